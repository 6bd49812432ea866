package generation

// Outcome classifies how a generation call ended. It is meant for logs and
// metrics; callers only see ErrNoContent for both failure outcomes.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomeTransportFailure Outcome = "transport_failure"
	OutcomeParseFailure     Outcome = "parse_failure"
	// OutcomePartial marks a storybook where some illustrations are missing.
	OutcomePartial Outcome = "partial"
)

// Result is the outcome of one generation. Payload holds the typed payload
// for Kind (see DecodePayload) and is nil unless Outcome is ok or partial.
// TokensUsed is reported whenever the model reported it, including for
// replies that could not be parsed.
type Result struct {
	Kind       Kind
	Payload    any
	TokensUsed int
	Outcome    Outcome
}
