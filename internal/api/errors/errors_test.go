package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	openai2 "meeting-transcriber/internal/app/api/openai"
	apperrors "meeting-transcriber/internal/app/errors"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"service failure", fmt.Errorf("transcribe chunk 1: %w", &openai2.ServiceError{Service: "whisper", Code: "server_error", StatusCode: 500}), http.StatusBadGateway},
		{"rejected key", &openai2.ServiceError{Service: "whisper", Code: "authentication_failed", StatusCode: 401}, http.StatusUnauthorized},
		{"silent audio", apperrors.Wrap(errors.New("duration 0s"), apperrors.ErrEmptyAudio, "x.mp3"), http.StatusUnprocessableEntity},
		{"unreadable audio", apperrors.Wrap(errors.New("exit 1"), apperrors.ErrProbeFailed, "x.mp3"), http.StatusUnprocessableEntity},
		{"write failure", apperrors.Wrap(errors.New("disk full"), apperrors.ErrFileWriteFailed, ""), http.StatusInternalServerError},
		{"api error", NewBadRequestError("missing field"), http.StatusBadRequest},
		{"too large", NewPayloadTooLargeError("too big"), http.StatusRequestEntityTooLarge},
		{"truncated upload", NewUploadFailedError("unexpected EOF"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromError(tt.err)
			assert.Equal(t, tt.status, apiErr.HTTPStatus())
			assert.Equal(t, tt.err.Error(), apiErr.Error())
		})
	}

	assert.Nil(t, FromError(nil))
}
