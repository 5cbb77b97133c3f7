package cli

import (
	"errors"
	"fmt"

	"github.com/jacksmith/pb/internal/book"
	"github.com/jacksmith/pb/internal/model"
)

// NotFoundError indicates a contact was not found.
type NotFoundError struct {
	ID string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contact %s not found", e.ID)
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field or argument that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Translate maps store and model errors for id to the typed errors above.
// Errors it does not recognize are returned unchanged.
func Translate(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, book.ErrNotFound):
		return &NotFoundError{ID: id}
	case errors.Is(err, model.ErrInvalidID):
		return &ValidationError{Field: "contact ID", Message: fmt.Sprintf("%q must be a 4-digit number between 1000 and 9999", id)}
	case errors.Is(err, book.ErrInvalidCriteria), errors.Is(err, model.ErrInvalidField):
		return &ValidationError{Message: err.Error()}
	}
	return err
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
