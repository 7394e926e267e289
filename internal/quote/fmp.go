package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"stockpulse/internal/logger"
	"stockpulse/internal/store"
	"stockpulse/internal/trace"
	"stockpulse/internal/types"
)

// HTTPClient is the part of http.Client the provider needs. Narrow on
// purpose so tests can substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FMPClient fetches quotes from the Financial Modeling Prep quote-short
// endpoint.
type FMPClient struct {
	baseURL string
	apiKey  string
	http    HTTPClient
}

type Option func(*FMPClient)

func WithHTTPClient(c HTTPClient) Option {
	return func(f *FMPClient) { f.http = c }
}

func WithBaseURL(u string) Option {
	return func(f *FMPClient) { f.baseURL = u }
}

// NewFMPClient creates a quote provider. The API key comes from the
// FMP_API_KEY environment variable.
func NewFMPClient(cfg *store.Config, opts ...Option) *FMPClient {
	c := &FMPClient{
		baseURL: cfg.Quotes.BaseURL,
		apiKey:  os.Getenv("FMP_API_KEY"),
		http:    &http.Client{Timeout: time.Duration(cfg.Quotes.TimeoutSeconds) * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type quoteShort struct {
	Symbol string   `json:"symbol"`
	Price  *float64 `json:"price"`
	Volume *int64   `json:"volume"`
}

// Fetch returns the current price and volume for symbol. A response
// with no usable record yields *types.NoDataError; request or envelope
// failures yield *types.TransportError.
func (c *FMPClient) Fetch(ctx context.Context, symbol string) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "fmp-quote")
	defer span.End()

	if c.apiKey == "" {
		return types.Quote{}, errors.New("FMP_API_KEY missing")
	}

	u := fmt.Sprintf("%s/api/v3/quote-short/%s?apikey=%s", c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return types.Quote{}, &types.TransportError{Op: "fmp quote request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Quote{}, &types.TransportError{Op: "fmp quote request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Quote{}, &types.TransportError{Op: "fmp quote request", Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	var records []quoteShort
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return types.Quote{}, &types.TransportError{Op: "fmp quote decode", Err: err}
	}

	if len(records) == 0 {
		return types.Quote{}, &types.NoDataError{Symbol: symbol}
	}

	rec := records[0]
	if rec.Price == nil || rec.Volume == nil {
		return types.Quote{}, &types.NoDataError{Symbol: symbol}
	}

	logger.Debug(ctx, "Quote fetched", "symbol", symbol, "price", *rec.Price, "volume", *rec.Volume)

	return types.Quote{Symbol: symbol, Price: *rec.Price, Volume: *rec.Volume}, nil
}
