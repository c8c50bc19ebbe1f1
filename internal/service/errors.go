package service

import "errors"

// Common service errors
var (
	// ErrDuplicateAccount is returned when registering an email that already exists
	ErrDuplicateAccount = errors.New("user already exists")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned when the account status is not active
	ErrAccountInactive = errors.New("account is not active")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrNotFoundOrUnauthorized is returned by ownership-scoped lookups.
	// A missing record and a record owned by someone else are indistinguishable.
	ErrNotFoundOrUnauthorized = errors.New("resource not found or not authorized")

	// ErrForbidden is returned when the caller may not act on an existing resource
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is returned when no file storage backend is configured
	ErrStorageUnavailable = errors.New("file storage is not configured")
)
