package auth

import "errors"

// Common authentication service errors.
//
// All of these are rejections: expected, user-facing outcomes that the API
// layer maps to 400/401 responses. Infrastructure failures (store outages,
// signing failures) are returned as distinct wrapped errors and must never
// be collapsed into one of these.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed login attempt. Unknown
	// usernames and wrong passwords both produce this error so the two are
	// indistinguishable to callers, preventing username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnknownSubject indicates a structurally valid token whose subject no
	// longer resolves to a user record (e.g. a deleted account). This is a
	// rejection, not an infrastructure failure.
	ErrUnknownSubject = errors.New("token subject no longer exists")
)
