package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidAPIKey = New("invalid API key format")
	ErrInvalidConfig = New("invalid configuration")

	// Input errors
	ErrFileNotFound   = New("file not found")
	ErrFileReadFailed = New("file read failed")
	ErrEmptyAudio     = New("audio has no duration")

	// Audio tooling errors
	ErrProbeFailed  = New("audio probe failed")
	ErrExportFailed = New("audio export failed")

	// Output errors
	ErrFileWriteFailed = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a sentinel to err so callers can match it with errors.Is
// while keeping the original cause in the chain.
func Wrap(err error, sentinel *Error, context string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: sentinel.message,
		cause:   &detail{context: context, cause: err},
	}
}

// Wrapf is Wrap with a formatted context.
func Wrapf(err error, sentinel *Error, format string, args ...interface{}) error {
	return Wrap(err, sentinel, fmt.Sprintf(format, args...))
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

type detail struct {
	context string
	cause   error
}

func (d *detail) Error() string {
	if d.context == "" {
		return d.cause.Error()
	}
	return fmt.Sprintf("%s: %v", d.context, d.cause)
}

func (d *detail) Unwrap() error {
	return d.cause
}
