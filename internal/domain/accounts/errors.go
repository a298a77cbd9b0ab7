package accounts

import (
	"errors"
	"fmt"
)

var (
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrResetNotFound      = errors.New("password reset not found")
	ErrResetExpired       = errors.New("password reset expired")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
