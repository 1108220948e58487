package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	openai2 "meeting-transcriber/internal/app/api/openai"
	"meeting-transcriber/internal/app/model"
	"meeting-transcriber/internal/app/prompts"
	"meeting-transcriber/internal/config"
)

const serviceName = "chat"

var errEmptyCompletion = errors.New("completion returned no content")

// Enhancer rewrites raw transcripts into structured notes with a chat model.
type Enhancer struct {
	client    *openai.Client
	modelName string
	template  string
	policy    openai2.RetryPolicy
	logger    *zap.Logger
}

// NewEnhancer creates an Enhancer using the fixed enhancement template.
func NewEnhancer(client *openai.Client, settings *config.Settings, logger *zap.Logger) *Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enhancer{
		client:    client,
		modelName: settings.Model,
		template:  prompts.TranscriptEnhancement,
		policy:    openai2.PolicyFromSettings(settings),
		logger:    logger.Named(serviceName),
	}
}

// Enhance never fails: when the service call fails for any reason the raw
// text comes back unchanged with status EnhancementFailed and the cause in Err.
func (e *Enhancer) Enhance(ctx context.Context, raw string) model.EnhancementResult {
	e.logger.Info("Starting transcript enhancement", zap.String("model", e.modelName))

	request := openai.ChatCompletionRequest{
		Model: e.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompts.Compose(e.template, raw),
			},
		},
	}

	resp, err := openai2.Retry(ctx, e.policy, e.logger, serviceName, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		resp, err := e.client.CreateChatCompletion(ctx, request)
		if err != nil {
			return resp, err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return resp, &openai2.ServiceError{Service: serviceName, Code: "empty_completion", Message: errEmptyCompletion.Error(), Err: errEmptyCompletion}
		}
		return resp, nil
	})
	if err != nil {
		e.logger.Error("Error during transcript enhancement, keeping raw transcript", zap.Error(err))
		return model.EnhancementResult{Text: raw, Status: model.EnhancementFailed, Err: err}
	}

	usage := openai2.ChatUsage(e.modelName, model.TokenUsage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	})
	e.logger.Info("Received enhanced transcript",
		zap.Int("input_tokens", usage.InputTokens),
		zap.Int("output_tokens", usage.OutputTokens),
		zap.Float64("cost_usd", usage.TotalCost()))

	text := resp.Choices[0].Message.Content
	status := model.EnhancementApplied
	if text == raw {
		status = model.EnhancementUnchanged
	}
	return model.EnhancementResult{Text: text, Status: status, Usage: &usage}
}
