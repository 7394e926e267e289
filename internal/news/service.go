package news

import (
	"context"
	"time"

	"stockpulse/internal/logger"
	"stockpulse/internal/store"
)

// Service is the NewsProvider used by the pipeline: the headline API
// first, and optionally the scraper when the API comes back empty.
type Service struct {
	api      *APIClient
	scraper  *Scraper
	fallback bool
	pageSize int
}

func NewService(cfg *store.Config, opts ...APIOption) *Service {
	return &Service{
		api:      NewAPIClient(cfg, opts...),
		scraper:  NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second),
		fallback: cfg.News.ScrapeFallback,
		pageSize: cfg.News.PageSize,
	}
}

// Fetch returns recent headlines for symbol. An empty result is valid;
// the scraper fallback is best effort and its failures degrade to the
// empty result rather than erroring the symbol.
func (s *Service) Fetch(ctx context.Context, symbol string) ([]string, error) {
	headlines, err := s.api.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if len(headlines) == 0 && s.fallback {
		logger.Info(ctx, "No headlines from API, trying Google News", "symbol", symbol)
		scraped, err := s.scraper.TopHeadlines(ctx, symbol, s.pageSize)
		if err != nil {
			logger.Warn(ctx, "Google News fallback failed", "symbol", symbol, "error", err)
			return []string{}, nil
		}
		return scraped, nil
	}

	return headlines, nil
}
