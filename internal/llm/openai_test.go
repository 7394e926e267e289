package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpulse/internal/store"
	"stockpulse/internal/types"
)

func newOpenAITest(t *testing.T, handler http.HandlerFunc) *OpenAISummarizer {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)

	cfg := &store.Config{}
	cfg.LLM.Provider = "OPENAI"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.LLM.MaxTokens = 300
	cfg.LLM.TimeoutSeconds = 2
	return NewOpenAISummarizer(cfg)
}

func TestOpenAISummarize(t *testing.T) {
	var gotAuth string
	s := newOpenAITest(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices":[{"message":{"content":"Strong quarter. BUY"}}]}`))
	})

	sum, err := s.Summarize(context.Background(), "ABC", types.Quote{Price: 10.5, Volume: 1000}, []string{"ABC beats earnings"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Strong quarter. BUY", sum.Text)
	assert.Equal(t, "gpt-4o-mini", sum.Model)
}

func TestOpenAIEmptyCompletionIsInferenceError(t *testing.T) {
	s := newOpenAITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
	})

	_, err := s.Summarize(context.Background(), "ABC", types.Quote{}, nil)

	var inference *types.InferenceError
	require.True(t, errors.As(err, &inference))
	assert.Equal(t, "ABC", inference.Symbol)
}

func TestOpenAINoChoicesIsInferenceError(t *testing.T) {
	s := newOpenAITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := s.Summarize(context.Background(), "ABC", types.Quote{}, nil)

	var inference *types.InferenceError
	require.True(t, errors.As(err, &inference))
}

func TestOpenAIServerErrorIsInferenceError(t *testing.T) {
	s := newOpenAITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.Summarize(context.Background(), "ABC", types.Quote{}, nil)

	var inference *types.InferenceError
	require.True(t, errors.As(err, &inference))
}
