package model

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// TokenUsage holds token counters and the derived cost of one enhancement call.
type TokenUsage struct {
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	InputCost    float64
	OutputCost   float64
}

// TotalCost is input cost plus output cost.
func (u TokenUsage) TotalCost() float64 {
	return u.InputCost + u.OutputCost
}

// UsageReport is generated once per request and only displayed.
type UsageReport struct {
	Enhancement *TokenUsage

	// TranscriptionMinutes is the audio duration rounded up to whole minutes.
	TranscriptionMinutes int
	TranscriptionCost    float64
	PricePerMinute       float64
}

// TotalCost sums the enhancement and transcription costs.
func (r UsageReport) TotalCost() float64 {
	total := r.TranscriptionCost
	if r.Enhancement != nil {
		total += r.Enhancement.TotalCost()
	}
	return total
}

// Lines renders the report as the cost lines shown in the CLI and the web page.
func (r UsageReport) Lines() []string {
	var lines []string
	if u := r.Enhancement; u != nil {
		lines = append(lines,
			"Token usage and cost details:",
			fmt.Sprintf("Input tokens: %s ($%.4f)", humanize.Comma(int64(u.InputTokens)), u.InputCost),
			fmt.Sprintf("Output tokens: %s ($%.4f)", humanize.Comma(int64(u.OutputTokens)), u.OutputCost),
			fmt.Sprintf("Total tokens: %s", humanize.Comma(int64(u.TotalTokens))),
			fmt.Sprintf("Total cost: $%.4f", u.TotalCost()),
		)
	}
	if r.TranscriptionMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Whisper API cost: $%.4f (%d minutes at $%.3f/minute)",
			r.TranscriptionCost, r.TranscriptionMinutes, r.PricePerMinute))
	}
	return lines
}
