package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// ServiceError describes a failed call to one of the hosted services.
type ServiceError struct {
	Service    string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %s", e.Service, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Service, e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyError converts a client error into a ServiceError and decides
// whether another attempt can succeed.
func ClassifyError(service string, err error) *ServiceError {
	if err == nil {
		return nil
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	if errors.Is(err, context.Canceled) {
		return &ServiceError{Service: service, Code: "canceled", Message: err.Error(), Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Service: service, Code: "timeout", Message: err.Error(), Retryable: true, Err: err}
	}

	status := 0
	message := err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		message = apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return &ServiceError{Service: service, Code: "transport_error", Message: message, Retryable: true, Err: err}
	}

	code, retryable := classifyStatus(status)
	return &ServiceError{
		Service:    service,
		Code:       code,
		Message:    message,
		StatusCode: status,
		Retryable:  retryable,
		Err:        err,
	}
}

func classifyStatus(status int) (string, bool) {
	switch {
	case status == http.StatusUnauthorized:
		return "authentication_failed", false
	case status == http.StatusRequestEntityTooLarge:
		return "file_too_large", false
	case status == http.StatusTooManyRequests:
		return "rate_limit_exceeded", true
	case status == http.StatusRequestTimeout:
		return "timeout", true
	case status >= http.StatusInternalServerError:
		return "server_error", true
	case status >= http.StatusBadRequest:
		return "invalid_request", false
	default:
		return "api_error", true
	}
}
