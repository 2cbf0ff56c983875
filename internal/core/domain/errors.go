package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenMissing       = errors.New("missing bearer token")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access forbidden")
)

// Attendance state machine.
var (
	ErrMissingLocation    = errors.New("missing latitude or longitude")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrAlreadyCheckedIn   = errors.New("check-in already exists for today")
	ErrNoOpenCheckIn      = errors.New("no open check-in found for today")
)

// ErrStoreUnavailable signals a transient data-store failure (timeout or
// lost connection). Safe for the caller to retry.
var ErrStoreUnavailable = errors.New("data store unavailable")
