package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/intakehq/intake-submitter/internal/app"
	"github.com/intakehq/intake-submitter/internal/config"
	"github.com/intakehq/intake-submitter/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "submitter failed: %v\n", err)
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
	defer logger.Close()

	log.InfoObj("submitter starting", "config", map[string]any{
		"app_name":  cfg.AppName,
		"env":       cfg.Env,
		"target_id": cfg.TargetID,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	submitter, err := app.NewSubmitter(ctx, cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize submitter", "error", err)
		return err
	}

	if err := submitter.Run(ctx); err != nil {
		return fmt.Errorf("submitter run: %w", err)
	}

	return nil
}
