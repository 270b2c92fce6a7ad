package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/devconnect/internal/client/cli"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

func main() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slogx.New(slogx.Config{
		Service: "devconnect-client",
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize client: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("client error: %v", err)
	}
}
