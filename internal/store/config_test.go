package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
email:
  from: reports@stockpulse.dev
directory:
  table: StockPulseSubscriptions
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DRY_RUN", cfg.Mode)
	assert.Equal(t, "https://financialmodelingprep.com", cfg.Quotes.BaseURL)
	assert.Equal(t, 10, cfg.Quotes.TimeoutSeconds)
	assert.Equal(t, "https://newsapi.org", cfg.News.BaseURL)
	assert.Equal(t, 3, cfg.News.PageSize)
	assert.Equal(t, "NOOP", cfg.LLM.Provider)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, "Your StockPulse Daily Insights", cfg.Email.Subject)
	assert.Equal(t, int32(100), cfg.Directory.PageSize)
	assert.Equal(t, 4, cfg.Pipeline.SymbolConcurrency)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigFull(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
mode: LIVE
quotes:
  base_url: http://localhost:9001
  timeout_seconds: 5
news:
  base_url: http://localhost:9002
  page_size: 5
  scrape_fallback: true
llm:
  provider: ANTHROPIC
  model: claude-3-5-haiku-latest
  max_tokens: 500
  temperature: 0.2
email:
  from: reports@stockpulse.dev
  subject: Custom Subject
  unsubscribe_base: https://stockpulse.dev
directory:
  table: StockPulseSubscriptions
  page_size: 25
pipeline:
  symbol_concurrency: 8
server:
  port: "9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "LIVE", cfg.Mode)
	assert.Equal(t, "http://localhost:9001", cfg.Quotes.BaseURL)
	assert.True(t, cfg.News.ScrapeFallback)
	assert.Equal(t, "ANTHROPIC", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.Equal(t, float32(0.2), cfg.LLM.Temperature)
	assert.Equal(t, "Custom Subject", cfg.Email.Subject)
	assert.Equal(t, int32(25), cfg.Directory.PageSize)
	assert.Equal(t, 8, cfg.Pipeline.SymbolConcurrency)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "mode: [broken")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := &Config{Mode: "DRY_RUN"}
		c.Email.From = "reports@stockpulse.dev"
		c.Directory.Table = "StockPulseSubscriptions"
		c.LLM.Provider = "NOOP"
		c.Pipeline.SymbolConcurrency = 4
		c.News.PageSize = 3
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad mode", func(c *Config) { c.Mode = "STAGING" }, "invalid mode"},
		{"missing from", func(c *Config) { c.Email.From = "" }, "email.from"},
		{"missing table", func(c *Config) { c.Directory.Table = "" }, "directory.table"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "GEMINI" }, "llm.provider"},
		{"zero concurrency", func(c *Config) { c.Pipeline.SymbolConcurrency = 0 }, "symbol_concurrency"},
		{"zero page size", func(c *Config) { c.News.PageSize = 0 }, "news.page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
