package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"stockpulse/internal/logger"
	"stockpulse/internal/store"
	"stockpulse/internal/trace"
	"stockpulse/internal/types"
)

// HTTPClient is the part of http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient fetches recent headlines for a symbol from the NewsAPI
// everything endpoint, newest first, capped at a small page size to
// keep downstream prompts bounded.
type APIClient struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     HTTPClient
}

type APIOption func(*APIClient)

func WithHTTPClient(c HTTPClient) APIOption {
	return func(a *APIClient) { a.http = c }
}

func WithBaseURL(u string) APIOption {
	return func(a *APIClient) { a.baseURL = u }
}

// NewAPIClient creates a headline client. The API key comes from the
// NEWS_API_KEY environment variable.
func NewAPIClient(cfg *store.Config, opts ...APIOption) *APIClient {
	c := &APIClient{
		baseURL:  cfg.News.BaseURL,
		apiKey:   os.Getenv("NEWS_API_KEY"),
		pageSize: cfg.News.PageSize,
		http:     &http.Client{Timeout: time.Duration(cfg.News.TimeoutSeconds) * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type articleEnvelope struct {
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Fetch returns up to pageSize headlines for symbol. Zero results is
// success; only envelope failures return *types.TransportError.
func (c *APIClient) Fetch(ctx context.Context, symbol string) ([]string, error) {
	ctx, span := trace.StartSpan(ctx, "newsapi-fetch")
	defer span.End()

	if c.apiKey == "" {
		return nil, errors.New("NEWS_API_KEY missing")
	}

	q := url.Values{}
	q.Set("q", symbol)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, &types.TransportError{Op: "newsapi request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &types.TransportError{Op: "newsapi request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.TransportError{Op: "newsapi request", Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	var envelope articleEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &types.TransportError{Op: "newsapi decode", Err: err}
	}

	headlines := make([]string, 0, c.pageSize)
	for _, a := range envelope.Articles {
		if a.Title == "" {
			continue
		}
		headlines = append(headlines, a.Title)
		if len(headlines) == c.pageSize {
			break
		}
	}

	logger.Debug(ctx, "Headlines fetched", "symbol", symbol, "count", len(headlines))
	return headlines, nil
}
