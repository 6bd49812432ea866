package generation

import "errors"

// Common errors returned by the generation packages.
var (
	// ErrNotConfigured is returned before any model call is attempted when a
	// required collaborator (and therefore its credential) is missing.
	ErrNotConfigured = errors.New("content generation service is not configured")

	// ErrNoContent is returned when a call produced nothing usable: either the
	// model call failed or its reply could not be turned into the expected
	// payload. Callers cannot tell the two apart; Result.Outcome can.
	ErrNoContent = errors.New("no content generated")

	// ErrSchemaMismatch is returned by DecodePayload when well-formed JSON does
	// not have the shape expected for the kind.
	ErrSchemaMismatch = errors.New("reply does not match the expected payload shape")

	// ErrInvalidRequest is returned when a Request cannot be rendered.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrContentBlocked is returned by collaborators when the provider refused
	// to answer because of its safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrNoImage is returned by an ImageGenerator when the reply carried no image part.
	ErrNoImage = errors.New("model reply contained no image")
)
