package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation does not apply to the current quiz state.
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	// ErrQuestionNotFound indicates a question index outside the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a value that is not one of the question's options.
	ErrOptionNotFound = errors.New("option not found")
	// ErrStorageUnavailable wraps every failure of the persisted key-value store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrRenderTargetMissing is reported when a display element is absent.
	ErrRenderTargetMissing = errors.New("render target missing")
)

// User-facing validation messages.
const (
	MsgNameRequired       = "Please enter your hero name!"
	MsgDifficultyRequired = "Please choose a difficulty!"
	MsgAnswerRequired     = "Please select an answer!"
)

// ValidationError is a recoverable input error shown to the player. It never changes state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
