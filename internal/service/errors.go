package service

import (
	"errors"
	"fmt"
)

var (
	ErrLineNotFound      = errors.New("line not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this name already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInactiveAccount   = errors.New("user account is inactive")
	ErrSelfDeletion      = errors.New("users cannot delete their own account")
	ErrPermissionDenied  = errors.New("permission denied: admin access required")
	ErrUnauthenticated   = errors.New("no valid session")
	ErrValidation        = errors.New("validation failed")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
