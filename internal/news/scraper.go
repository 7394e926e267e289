package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stockpulse/internal/logger"
)

// Scraper pulls headlines from the Google News search page. It only
// runs as a fallback when the primary headline API returns nothing.
type Scraper struct {
	baseURL string
	timeout time.Duration
}

// NewScraper creates a Google News scraper
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		baseURL: "https://news.google.com",
		timeout: timeout,
	}
}

// TopHeadlines scrapes up to limit headlines for a symbol
func (s *Scraper) TopHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&hl=en-US", s.baseURL, url.QueryEscape(symbol+" stock"))

	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	headlines := []string{}
	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}
		if title := articleTitle(e.DOM); title != "" {
			headlines = append(headlines, title)
		}
	})

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("scrape %s: %w", searchURL, err)
	}
	c.Wait()

	logger.Debug(ctx, "Scraped headlines", "symbol", symbol, "count", len(headlines))
	return headlines, nil
}

// articleTitle extracts the headline text from one Google News article
// card. Layouts vary; try the heading links first, then any link long
// enough to look like a headline.
func articleTitle(sel *goquery.Selection) string {
	for _, q := range []string{"h3 a", "h4 a", "a"} {
		title := strings.TrimSpace(sel.Find(q).First().Text())
		if len(title) >= 20 {
			return title
		}
	}
	return ""
}
