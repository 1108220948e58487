package errors

import (
	stderrors "errors"
	"net/http"

	openai2 "meeting-transcriber/internal/app/api/openai"
	apperrors "meeting-transcriber/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest         ErrorKind = "bad_request"
	KindUploadFailed       ErrorKind = "upload_failed"
	KindPayloadTooLarge    ErrorKind = "payload_too_large"
	KindUnprocessable      ErrorKind = "unprocessable"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindInternal           ErrorKind = "internal"
)

// APIError is an error rendered to the user with an HTTP status
type APIError struct {
	Kind      ErrorKind
	Message   string
	RequestID string
	Err       error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest, KindUploadFailed:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindServiceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewUploadFailedError reports a request body that was cut off or malformed
func NewUploadFailedError(message string) *APIError {
	return &APIError{
		Kind:    KindUploadFailed,
		Message: message,
	}
}

// NewPayloadTooLargeError creates an upload size error
func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// FromError maps a pipeline error to the kind the user sees. The message is
// the full error text so the page shows what actually failed.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	kind := KindInternal
	var serviceErr *openai2.ServiceError
	switch {
	case stderrors.As(err, &serviceErr):
		kind = KindServiceUnavailable
		if serviceErr.StatusCode == http.StatusUnauthorized {
			kind = KindUnauthorized
		}
	case stderrors.Is(err, apperrors.ErrEmptyAudio),
		stderrors.Is(err, apperrors.ErrProbeFailed),
		stderrors.Is(err, apperrors.ErrFileNotFound):
		kind = KindUnprocessable
	}

	return &APIError{Kind: kind, Message: err.Error(), Err: err}
}
