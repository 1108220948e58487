package openai

import (
	"math"
	"time"

	"meeting-transcriber/internal/app/model"
	"meeting-transcriber/internal/config"
)

// premiumModel is billed at the higher tier; every other model uses the standard tier.
const premiumModel = "gpt-4o"

type chatPrice struct {
	inputPerMillion  float64
	outputPerMillion float64
}

var (
	premiumPrice  = chatPrice{inputPerMillion: 15.00, outputPerMillion: 60.00}
	standardPrice = chatPrice{inputPerMillion: 2.50, outputPerMillion: 10.00}
)

// ChatUsage prices the token counters returned by a chat completion.
func ChatUsage(modelName string, usage model.TokenUsage) model.TokenUsage {
	price := standardPrice
	if modelName == premiumModel {
		price = premiumPrice
	}
	usage.Model = modelName
	usage.InputCost = float64(usage.InputTokens) / 1_000_000 * price.inputPerMillion
	usage.OutputCost = float64(usage.OutputTokens) / 1_000_000 * price.outputPerMillion
	return usage
}

// TranscriptionCost bills audio by started minute.
func TranscriptionCost(duration time.Duration) (minutes int, cost float64) {
	if duration <= 0 {
		return 0, 0
	}
	minutes = int(math.Ceil(duration.Seconds() / 60))
	return minutes, float64(minutes) * config.WhisperPricePerMinute
}
