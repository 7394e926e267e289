// Package pipeline drives the per-subscriber batch report run: fan out
// over each subscriber's symbols, chain quote -> news -> summary ->
// section per symbol, and email whatever succeeded. Partial success is
// the steady state; failures are contained and logged, never escalated.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"stockpulse/internal/interfaces"
	"stockpulse/internal/llm"
	"stockpulse/internal/logger"
	"stockpulse/internal/report"
	"stockpulse/internal/store"
	"stockpulse/internal/trace"
	"stockpulse/internal/types"
)

// Pipeline is the batch report orchestrator. All collaborators are
// injected at construction and live for one run.
type Pipeline struct {
	cfg        *store.Config
	directory  interfaces.SubscriberDirectory
	quotes     interfaces.QuoteProvider
	news       interfaces.NewsProvider
	summarizer interfaces.Summarizer
	notifier   interfaces.Notifier
}

func New(cfg *store.Config, directory interfaces.SubscriberDirectory, quotes interfaces.QuoteProvider, news interfaces.NewsProvider, summarizer interfaces.Summarizer, notifier interfaces.Notifier) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		directory:  directory,
		quotes:     quotes,
		news:       news,
		summarizer: summarizer,
		notifier:   notifier,
	}
}

// Run walks every subscriber page and processes each subscriber in
// turn. It always completes: per-symbol and per-subscriber failures are
// logged and counted, never returned. Cancelling ctx abandons the run;
// partially assembled reports are discarded unsent.
func (p *Pipeline) Run(ctx context.Context) types.RunStats {
	ctx, span := trace.StartSpan(ctx, "pipeline-run")
	defer span.End()

	var stats types.RunStats
	cursor := ""
	for {
		subs, next, err := p.directory.List(ctx, cursor)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to list subscribers", err, "cursor", cursor)
			break
		}

		for _, sub := range subs {
			if ctx.Err() != nil {
				logger.Warn(ctx, "Run cancelled, discarding remaining subscribers")
				return stats
			}
			p.processSubscriber(ctx, sub, &stats)
		}

		if next == "" {
			break
		}
		cursor = next
	}

	logger.Info(ctx, "Report run finished",
		"subscribers", stats.Subscribers,
		"emails_sent", stats.EmailsSent,
		"skipped", stats.Skipped,
		"symbol_failures", stats.SymbolFailures,
		"delivery_failures", stats.DeliveryFailures)
	return stats
}

// processSubscriber assembles and delivers one subscriber's report.
// A delivery failure is logged and counted; it never stops the run.
func (p *Pipeline) processSubscriber(ctx context.Context, sub types.Subscriber, stats *types.RunStats) {
	ctx, span := trace.StartSpan(ctx, "subscriber-report",
		oteltrace.WithAttributes(attribute.Int("symbols", len(sub.Symbols))))
	defer span.End()

	timer := logger.StartOperation(ctx, "subscriber_report", "recipient", sub.Email)
	defer timer.End()

	stats.Subscribers++

	if len(sub.Symbols) == 0 {
		logger.Debug(ctx, "Subscriber has no symbols, skipping", "recipient", sub.Email)
		stats.Skipped++
		return
	}

	sections, failed := p.collectSections(ctx, sub.Symbols)
	stats.SymbolFailures += failed

	if ctx.Err() != nil {
		// Cancelled mid-assembly: the partial report must not go out.
		return
	}

	if len(sections) == 0 {
		logger.Info(ctx, "No sections produced, no email this cycle", "recipient", sub.Email)
		stats.Skipped++
		return
	}

	body := report.Render(sub.Email, sections, p.cfg.Email.UnsubscribeBase)
	err := p.notifier.Send(ctx, sub.Email, p.cfg.Email.Subject, body)
	logger.Delivery(ctx, sub.Email, len(sections), err)
	if err != nil {
		stats.DeliveryFailures++
		return
	}
	stats.EmailsSent++
}

// collectSections runs the per-symbol pipelines with bounded
// concurrency and returns the successful sections in symbol-list order
// plus the number of symbols that failed. Workers write into fixed
// slots, so ordering never depends on scheduling.
func (p *Pipeline) collectSections(ctx context.Context, symbols []string) ([]types.ReportSection, int) {
	slots := make([]*types.ReportSection, len(symbols))

	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Pipeline.SymbolConcurrency)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			sec, err := p.processSymbol(ctx, symbol)
			if err != nil {
				// Contained at the symbol boundary: siblings keep going.
				logger.SymbolSkipped(ctx, symbol, stageOf(err), err)
				return nil
			}
			slots[i] = &sec
			return nil
		})
	}
	_ = g.Wait()

	sections := make([]types.ReportSection, 0, len(symbols))
	failed := 0
	for _, slot := range slots {
		if slot == nil {
			failed++
			continue
		}
		sections = append(sections, *slot)
	}
	return sections, failed
}

// processSymbol runs one symbol's strict chain. Each step consumes its
// predecessor's output, so the first failure short-circuits the rest.
func (p *Pipeline) processSymbol(ctx context.Context, symbol string) (types.ReportSection, error) {
	ctx, span := trace.StartSpan(ctx, "symbol-pipeline",
		oteltrace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	quote, err := p.quotes.Fetch(ctx, symbol)
	if err != nil {
		return types.ReportSection{}, fmt.Errorf("fetch quote: %w", err)
	}

	headlines, err := p.news.Fetch(ctx, symbol)
	if err != nil {
		return types.ReportSection{}, fmt.Errorf("fetch news: %w", err)
	}

	summary, err := p.summarizer.Summarize(ctx, symbol, quote, headlines)
	if err != nil {
		return types.ReportSection{}, fmt.Errorf("summarize: %w", err)
	}
	logger.Debug(ctx, "Summary generated", "symbol", symbol, "recommendation", llm.ParseRecommendation(summary.Text))

	return report.BuildSection(symbol, quote, headlines, summary), nil
}

// stageOf names the pipeline stage a symbol failure came from, for the
// skip log line.
func stageOf(err error) string {
	var noData *types.NoDataError
	var transport *types.TransportError
	var inference *types.InferenceError
	switch {
	case errors.As(err, &noData):
		return "quote"
	case errors.As(err, &inference):
		return "summary"
	case errors.As(err, &transport):
		return "transport"
	default:
		return "unknown"
	}
}
