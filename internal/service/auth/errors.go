package auth

import "errors"

// Common authentication service errors. Verification failures are always
// normalized into these sentinels; raw library errors never reach callers.
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWrongTokenType indicates a token of one kind was presented to the
	// verifier of the other kind.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
