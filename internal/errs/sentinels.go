// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Auth domain.
var (
	// ErrUserAlreadyExists indicates the username is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound indicates no user with the given username exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword indicates the password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
)

// Token domain.
var (
	// ErrTokenMissing indicates no token was presented.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid indicates a malformed token or a bad signature.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Persistence domain.
var (
	// ErrCorruptStore indicates a collection file that is not a valid serialization of its records.
	ErrCorruptStore = errors.New("corrupt store")
)
