package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stockpulse/internal/logger"
	"stockpulse/internal/pipeline"
	"stockpulse/internal/store"
	"stockpulse/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()

	must(logger.Init())
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := store.LoadConfig(configPath())
	must(err)

	var p *pipeline.Pipeline
	p, err = buildPipeline(ctx, cfg)
	must(err)

	stats := p.Run(ctx)

	b, _ := json.Marshal(stats)
	fmt.Println(string(b))

	_ = trace.Shutdown(context.Background())
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
