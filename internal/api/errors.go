package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/service"
	"github.com/classplay/classplay-api/internal/service/auth"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/go-playground/validator/v10"
)

var (
	// errInvalidPathID is returned for a malformed {id} path parameter.
	errInvalidPathID = errors.New("invalid path identifier")

	// errInvalidQuery is returned for a malformed query parameter.
	errInvalidQuery = errors.New("invalid query parameter")
)

// Messages shown to clients for generation failures.
const (
	msgNotConfigured    = "Content generation service is not configured"
	msgGenerationFailed = "Content generation failed, please try again"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrAccountBlocked),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, errInvalidPathID),
		errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrNotConfigured):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrNoContent):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Domain
// validation messages are written for users and are passed through; every
// other error gets a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var invalid validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Incorrect email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Could not validate credentials"
	case errors.Is(err, auth.ErrAccountBlocked):
		return "Account is blocked"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Admin privileges required"

	case errors.Is(err, store.ErrUserNotFound):
		return "Teacher not found"
	case errors.Is(err, store.ErrClassNotFound):
		return "Class not found"
	case errors.Is(err, store.ErrResourceNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrOrganizationNotFound):
		return "Organization not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.As(err, &invalid):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, service.ErrSelfDelete):
		return "You cannot delete your own account"
	case errors.Is(err, service.ErrInvalidPage), errors.Is(err, errInvalidQuery):
		return "Invalid pagination parameters"
	case errors.Is(err, errInvalidPathID), errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, generation.ErrInvalidRequest):
		return "Invalid generation request"

	case errors.Is(err, generation.ErrNotConfigured):
		return msgNotConfigured
	case errors.Is(err, generation.ErrNoContent):
		return msgGenerationFailed

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted detail. fallback replaces the generic 500 message when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden || status == http.StatusBadGateway {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field by its JSON name.
func SanitizeValidationError(err error) string {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) || len(invalid) == 0 {
		return "Validation error"
	}

	first := invalid[0]
	return fmt.Sprintf("Invalid %s: %s", first.Field(), getValidationTagMessage(first.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// validationMessage returns the innermost message of a domain validation
// error, which is safe to show.
func validationMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil || !errors.Is(next, domain.ErrValidation) {
			break
		}
		err = next
	}
	msg := err.Error()
	if msg == "" {
		return "Validation error"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
