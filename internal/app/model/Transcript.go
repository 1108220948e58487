package model

import "time"

// EnhancementStatus tells callers what the enhancement pass actually did.
type EnhancementStatus string

const (
	// EnhancementApplied means the service returned a rewritten text.
	EnhancementApplied EnhancementStatus = "applied"
	// EnhancementUnchanged means the call succeeded but returned the input verbatim.
	EnhancementUnchanged EnhancementStatus = "unchanged"
	// EnhancementFailed means the call failed and the raw text was kept.
	EnhancementFailed EnhancementStatus = "failed"
)

// EnhancementResult is the outcome of one enhancement call. Text is always
// usable: on failure it is the raw input.
type EnhancementResult struct {
	Text   string
	Status EnhancementStatus
	Usage  *TokenUsage
	Err    error
}

// Applied reports whether Text differs from the raw input because of the service.
func (r EnhancementResult) Applied() bool {
	return r.Status == EnhancementApplied
}

// TranscriptResult is what the delivery surfaces render for one request.
type TranscriptResult struct {
	Source       string
	Title        string
	Sections     []string
	Text         string
	RawPath      string
	EnhancedPath string
	Enhancement  EnhancementStatus
	Chunks       int
	Duration     time.Duration
	Usage        UsageReport
	Elapsed      time.Duration
}

// IsHTML reports whether Text is model-generated markup rather than literal transcript text.
func (r *TranscriptResult) IsHTML() bool {
	return r.Enhancement == EnhancementApplied
}
