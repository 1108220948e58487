package api

import (
	"context"

	"meeting-transcriber/internal/app/model"
)

// Transcriber converts one audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, inputFilePath string) (string, error)
}

// Enhancer rewrites a raw transcript. It never fails; degraded results carry
// the raw text and a non-applied status.
type Enhancer interface {
	Enhance(ctx context.Context, raw string) model.EnhancementResult
}
