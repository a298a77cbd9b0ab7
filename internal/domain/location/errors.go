package location

import (
	"errors"
	"fmt"
)

var (
	ErrStateNotFound = errors.New("state not found")
	ErrCityNotFound  = errors.New("city not found")
)

// ValidationError carries the form field the message belongs to so the
// handler can attribute it in the response.
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
