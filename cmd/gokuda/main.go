package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/finverge-hq/gokuda/internal/app"
	"github.com/finverge-hq/gokuda/internal/config"
	"github.com/finverge-hq/gokuda/internal/logger"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, app.ErrResult) {
			fmt.Fprintf(os.Stderr, "gokuda failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console, err := app.NewConsole(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize console", "error", err)
		return err
	}

	return console.Run(ctx, os.Args[1:])
}
