package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpulse/internal/store"
)

func newTestService(t *testing.T, handler http.HandlerFunc, fallback bool) *Service {
	t.Helper()
	t.Setenv("NEWS_API_KEY", "test-key")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &store.Config{}
	cfg.News.BaseURL = srv.URL
	cfg.News.PageSize = 3
	cfg.News.TimeoutSeconds = 2
	cfg.News.ScrapeFallback = fallback
	return NewService(cfg)
}

func TestServiceUsesAPIHeadlines(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[{"title":"ABC beats earnings"}]}`))
	}, true)

	headlines, err := svc.Fetch(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC beats earnings"}, headlines)
}

func TestServiceEmptyWithoutFallback(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[]}`))
	}, false)

	headlines, err := svc.Fetch(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Empty(t, headlines)
}

func TestServiceFallbackFailureDegradesToEmpty(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[]}`))
	}, true)
	// Point the scraper at a closed port so the fallback fails fast.
	svc.scraper.baseURL = "http://127.0.0.1:1"

	headlines, err := svc.Fetch(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Empty(t, headlines)
}

func TestServicePropagatesAPIErrors(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, true)

	_, err := svc.Fetch(context.Background(), "ABC")
	require.Error(t, err)
}
