package family

import (
	"errors"
	"fmt"
)

var (
	ErrHeadNotFound   = errors.New("family not found")
	ErrMemberNotFound = errors.New("family member not found")
	ErrHobbyNotFound  = errors.New("hobby not found")
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
