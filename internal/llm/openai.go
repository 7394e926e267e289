package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"stockpulse/internal/store"
	"stockpulse/internal/trace"
	"stockpulse/internal/types"
)

// OpenAISummarizer generates symbol summaries via the OpenAI chat
// completions API.
type OpenAISummarizer struct {
	cfg      *store.Config
	endpoint string
	timeout  time.Duration
}

// NewOpenAISummarizer creates a summarizer. Set OPENAI_API_ENDPOINT to
// route through a proxy.
func NewOpenAISummarizer(cfg *store.Config) *OpenAISummarizer {
	endpoint := "https://api.openai.com/v1/chat/completions"
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &OpenAISummarizer{
		cfg:      cfg,
		endpoint: endpoint,
		timeout:  time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, symbol string, quote types.Quote, headlines []string) (types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "openai-summarize")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.Summary{}, errors.New("OPENAI_API_KEY missing")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body := map[string]any{
		"model": s.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "user", "content": BuildPrompt(symbol, quote, headlines)},
		},
		"temperature": s.cfg.LLM.Temperature,
		"max_tokens":  s.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: fmt.Errorf("openai http %d", resp.StatusCode)}
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: err}
	}

	if len(r.Choices) == 0 {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: errors.New("no choices")}
	}

	text := strings.TrimSpace(r.Choices[0].Message.Content)
	if text == "" {
		return types.Summary{}, &types.InferenceError{Symbol: symbol, Err: errors.New("empty completion")}
	}

	return types.Summary{Text: text, Model: s.cfg.LLM.Model}, nil
}
