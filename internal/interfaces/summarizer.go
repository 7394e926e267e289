package interfaces

import (
	"context"

	"stockpulse/internal/types"
)

type Summarizer interface {
	Summarize(ctx context.Context, symbol string, quote types.Quote, headlines []string) (types.Summary, error)
}
