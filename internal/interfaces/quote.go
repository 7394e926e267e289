package interfaces

import (
	"context"

	"stockpulse/internal/types"
)

type QuoteProvider interface {
	Fetch(ctx context.Context, symbol string) (types.Quote, error)
}
