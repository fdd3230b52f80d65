// Package common defines sentinel errors shared by the repository, service
// and transport layers of FocusKeeper. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrNotImplemented = errors.New("not implemented")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordMismatch  = errors.New("password mismatch")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")

	// Focus tree errors.
	ErrFocusNotFound  = errors.New("focus not found")
	ErrParentNotFound = errors.New("parent focus not found")
)
