package llm

import (
	"context"

	"stockpulse/internal/logger"
	"stockpulse/internal/types"
)

// NoopSummarizer is used when no LLM provider is configured. It returns
// a fixed HOLD narrative so the rest of the pipeline stays exercisable.
type NoopSummarizer struct{}

func NewNoopSummarizer() *NoopSummarizer {
	return &NoopSummarizer{}
}

func (s *NoopSummarizer) Summarize(ctx context.Context, symbol string, quote types.Quote, headlines []string) (types.Summary, error) {
	logger.Debug(ctx, "Noop summarizer called", "symbol", symbol)
	return types.Summary{
		Text:  "Automated analysis is not configured for this report. HOLD",
		Model: "noop",
	}, nil
}
