package openai

import (
	"github.com/sashabaranov/go-openai"
	"meeting-transcriber/internal/config"
)

// NewClient builds the OpenAI client shared by the transcription and
// enhancement clients. It is constructed once and injected.
func NewClient(settings *config.Settings) *openai.Client {
	clientConfig := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		clientConfig.BaseURL = settings.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// PolicyFromSettings derives the retry policy for both service calls.
func PolicyFromSettings(settings *config.Settings) RetryPolicy {
	return RetryPolicy{
		MaxRetries:   settings.MaxRetries,
		InitialDelay: settings.RetryDelay,
		MaxDelay:     config.MaxRetryDelay,
		Timeout:      settings.RequestTimeout,
	}
}
