package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRegistration = errors.New("invalid registration details")
	// ErrInconsistentAccount means an identity exists without a profile and
	// could not be removed again.
	ErrInconsistentAccount = errors.New("account left inconsistent")
)
