package interfaces

import "context"

// NewsProvider returns recent headlines for a symbol, most relevant
// first. No results is not an error; it returns an empty slice.
type NewsProvider interface {
	Fetch(ctx context.Context, symbol string) ([]string, error)
}
