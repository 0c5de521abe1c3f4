package domain

import "errors"

// Validation rejections and not-found lookups are normal return values for
// the lifecycle operations; infrastructure failures are wrapped separately so
// callers can tell "your input was rejected" from "the system broke".
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound    = errors.New("user not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrUsernameTaken   = errors.New("username already in use")
	ErrTitleTaken      = errors.New("listing title already in use")

	// ErrMalformedCredentials signals a login attempt whose email or password
	// fails the format checks, distinct from credentials that are well formed
	// but wrong.
	ErrMalformedCredentials = errors.New("malformed credentials")
	ErrInvalidCredentials   = errors.New("invalid credentials")

	ErrForbidden         = errors.New("access forbidden")
	ErrBookingConflict   = errors.New("booking dates conflict with an existing booking")
	ErrInsufficientFunds = errors.New("insufficient balance")
)
