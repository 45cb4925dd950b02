package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
)

// ValidationError names the offending input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
