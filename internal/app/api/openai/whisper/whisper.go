package whisper

import (
	"context"
	"os"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	openai2 "meeting-transcriber/internal/app/api/openai"
	apperrors "meeting-transcriber/internal/app/errors"
	"meeting-transcriber/internal/config"
)

const serviceName = "whisper"

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
	policy   openai2.RetryPolicy
	logger   *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, settings *config.Settings, logger *zap.Logger) *RemoteTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := settings.TranscriptionModel
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{
		client:   client,
		model:    model,
		language: settings.Language,
		policy:   openai2.PolicyFromSettings(settings),
		logger:   logger.Named(serviceName),
	}
}

// Transcribe returns the literal text of one audio chunk in the configured
// language. Failures are returned after the retry policy is exhausted.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string) (string, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrFileNotFound, inputFilePath)
	}

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
	}

	resp, err := openai2.Retry(ctx, rt.policy, rt.logger, serviceName, func(ctx context.Context) (openai.AudioResponse, error) {
		return rt.client.CreateTranscription(ctx, req)
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
