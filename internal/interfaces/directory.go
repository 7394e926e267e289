package interfaces

import (
	"context"

	"stockpulse/internal/types"
)

// SubscriberDirectory enumerates subscriber records page by page.
// List returns one page plus a continuation cursor; an empty cursor
// means the enumeration is complete.
type SubscriberDirectory interface {
	List(ctx context.Context, cursor string) ([]types.Subscriber, string, error)
}
