package llm

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"stockpulse/internal/store"
	"stockpulse/internal/trace"
	"stockpulse/internal/types"
)

// AnthropicSummarizer generates symbol summaries via the Anthropic
// messages API.
type AnthropicSummarizer struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

// NewAnthropicSummarizer creates a summarizer. The API key comes from
// the ANTHROPIC_API_KEY environment variable.
func NewAnthropicSummarizer(cfg *store.Config) (*AnthropicSummarizer, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY missing")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicSummarizer{
		client:    &client,
		model:     anthropic.Model(cfg.LLM.Model),
		maxTokens: int64(cfg.LLM.MaxTokens),
		timeout:   time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	}, nil
}

// Summarize asks the model for a short narrative ending in a
// BUY/SELL/HOLD call. Any transport, timeout, or empty-completion
// failure comes back as *types.InferenceError.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, symbol string, quote types.Quote, headlines []string) (types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "anthropic-summarize")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := BuildPrompt(symbol, quote, headlines)

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: err}
	}

	if len(resp.Content) == 0 {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: errors.New("empty completion")}
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	if text == "" {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: errors.New("empty completion")}
	}

	return types.Summary{Text: text, Model: string(s.model)}, nil
}
