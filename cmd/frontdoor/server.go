package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/atlanticdynamic/frontdoor/cmd/frontdoor/server"
	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/logging"
	"github.com/atlanticdynamic/frontdoor/internal/logging/writers"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "Start the development server",
	Action: serveAction,
}

var productionCmd = &cli.Command{
	Name:   "production",
	Usage:  "Start the server under the process supervisor",
	Action: productionAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.FromEnvironment()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := setupLogger(cfg, logging.FormatText, cfg.LogLevel, string(writers.WriterTypeStderr))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, logger, cfg, server.ModeDevelopment)
}

func productionAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.FromEnvironment()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profile := server.NewProfile(cfg)
	logger, err := setupLogger(cfg, profile.LogFormat, profile.LogLevel, profile.ErrorLog)
	if err != nil {
		return err
	}

	return server.Run(ctx, logger, cfg, server.ModeProduction)
}
