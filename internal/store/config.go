package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode string `yaml:"mode"`

	Quotes struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"quotes"`

	News struct {
		BaseURL        string `yaml:"base_url"`
		PageSize       int    `yaml:"page_size"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		ScrapeFallback bool   `yaml:"scrape_fallback"`
	} `yaml:"news"`

	LLM struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Email struct {
		From            string `yaml:"from"`
		Subject         string `yaml:"subject"`
		UnsubscribeBase string `yaml:"unsubscribe_base"`
	} `yaml:"email"`

	Directory struct {
		Table    string `yaml:"table"`
		PageSize int32  `yaml:"page_size"`
	} `yaml:"directory"`

	Pipeline struct {
		SymbolConcurrency int `yaml:"symbol_concurrency"`
	} `yaml:"pipeline"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.Email.From == "" {
		return errors.New("email.from cannot be empty")
	}
	if c.Directory.Table == "" {
		return errors.New("directory.table cannot be empty")
	}
	switch c.LLM.Provider {
	case "ANTHROPIC", "OPENAI", "NOOP":
	default:
		return fmt.Errorf("llm.provider must be 'ANTHROPIC', 'OPENAI', or 'NOOP', got '%s'", c.LLM.Provider)
	}
	if c.Pipeline.SymbolConcurrency < 1 {
		return fmt.Errorf("pipeline.symbol_concurrency must be >= 1, got %d", c.Pipeline.SymbolConcurrency)
	}
	if c.News.PageSize < 1 {
		return fmt.Errorf("news.page_size must be >= 1, got %d", c.News.PageSize)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.Quotes.BaseURL == "" {
		c.Quotes.BaseURL = "https://financialmodelingprep.com"
	}
	if c.Quotes.TimeoutSeconds == 0 {
		c.Quotes.TimeoutSeconds = 10
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 3
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.Email.Subject == "" {
		c.Email.Subject = "Your StockPulse Daily Insights"
	}
	if c.Directory.PageSize == 0 {
		c.Directory.PageSize = 100
	}
	if c.Pipeline.SymbolConcurrency == 0 {
		c.Pipeline.SymbolConcurrency = 4
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
