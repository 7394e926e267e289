package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"stockpulse/internal/directory"
	"stockpulse/internal/interfaces"
	"stockpulse/internal/llm"
	"stockpulse/internal/logger"
	"stockpulse/internal/news"
	"stockpulse/internal/notifier"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/quote"
	"stockpulse/internal/store"
)

// buildPipeline wires every collaborator for one run. Handles are
// constructed here and live for the run only.
func buildPipeline(ctx context.Context, cfg *store.Config) (*pipeline.Pipeline, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	dir := directory.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Directory.Table, cfg.Directory.PageSize)

	summarizer, err := initializeSummarizer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(
		cfg,
		dir,
		quote.NewFMPClient(cfg),
		news.NewService(cfg),
		summarizer,
		initializeNotifier(ctx, cfg, awsCfg),
	), nil
}

func initializeSummarizer(ctx context.Context, cfg *store.Config) (interfaces.Summarizer, error) {
	switch cfg.LLM.Provider {
	case "ANTHROPIC":
		return llm.NewAnthropicSummarizer(cfg)
	case "OPENAI":
		return llm.NewOpenAISummarizer(cfg), nil
	default:
		logger.Warn(ctx, "No LLM provider configured - using noop summarizer")
		return llm.NewNoopSummarizer(), nil
	}
}

func initializeNotifier(ctx context.Context, cfg *store.Config, awsCfg aws.Config) interfaces.Notifier {
	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - emails will be logged, not sent")
		return notifier.NewDryRunNotifier()
	}
	return notifier.NewSESNotifier(sesv2.NewFromConfig(awsCfg), cfg.Email.From)
}
