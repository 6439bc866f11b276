package services

import "errors"

// Error taxonomy for the civic data store. Every state-dependent operation
// fails fast with one of these; callers match with errors.Is and render a
// short human-readable message. None of them are fatal — bad input is
// user-correctable and corrupt local state is cleared on restore.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateIdentity   = errors.New("email already exists")
	ErrInvalidOTP          = errors.New("invalid OTP")
	ErrNotAuthenticated    = errors.New("user not authenticated")
	ErrNotFound            = errors.New("not found")
	ErrMalformedState      = errors.New("malformed persisted state")
	ErrInsufficientBalance = errors.New("insufficient merit point balance")
)
