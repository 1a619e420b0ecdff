package service

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDataIntegrity means a stored record is corrupt, e.g. a password hash
	// that is not a bcrypt hash.
	ErrDataIntegrity = errors.New("data integrity violation")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrOrderAccess   = errors.New("order belongs to another user")
	ErrEmptyOrder    = errors.New("no order items")
	ErrUnknownItem   = errors.New("order references an unknown product")
	ErrAdminDelete   = errors.New("cannot delete admin user")
	// ErrPasswordTooLong: bcrypt only reads the first 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrInvalidName     = errors.New("name is required")
)
