package auth

import "errors"

var (
	// ErrInvalidToken is returned for malformed tokens, bad signatures and
	// tokens carrying unexpected claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned for tokens issued in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is returned when an email and password pair does
	// not match an active account. It deliberately does not say which part
	// was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrAccountBlocked is returned when a blocked user presents a valid token.
	ErrAccountBlocked = errors.New("account is blocked")
)
