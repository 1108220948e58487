package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"meeting-transcriber/internal/app/model"
)

const (
	// SampleRawTranscript is a short unpolished transcript in the default language.
	SampleRawTranscript = "eh bueno hoy vamos a hablar de eh concurrencia en Go"

	// SampleEnhancedTranscript is what a successful enhancement of SampleRawTranscript looks like.
	SampleEnhancedTranscript = "<h1>Concurrencia en Go</h1>\n<h2>Contexto</h2>\n<p>Hoy vamos a hablar de concurrencia en Go.</p>"
)

// WriteFile creates name under dir with content and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// AppliedResult is an enhancement result as returned by a successful call.
func AppliedResult(text string, inputTokens, outputTokens int) model.EnhancementResult {
	return model.EnhancementResult{
		Text:   text,
		Status: model.EnhancementApplied,
		Usage: &model.TokenUsage{
			Model:        "gpt-4o",
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
			InputCost:    float64(inputTokens) / 1_000_000 * 15,
			OutputCost:   float64(outputTokens) / 1_000_000 * 60,
		},
	}
}

// FailedResult is an enhancement result after the service call failed.
func FailedResult(raw string, err error) model.EnhancementResult {
	return model.EnhancementResult{Text: raw, Status: model.EnhancementFailed, Err: err}
}
