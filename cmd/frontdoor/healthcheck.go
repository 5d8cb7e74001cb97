package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atlanticdynamic/frontdoor/internal/client"
	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/logging"
	"github.com/urfave/cli/v3"
)

var healthcheckCmd = &cli.Command{
	Name:  "healthcheck",
	Usage: "Probe the /health endpoint, exit non-zero unless it reports healthy",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Usage:   "Health endpoint URL or host:port (defaults to the local PORT)",
			Aliases: []string{"u"},
			Sources: cli.EnvVars("HEALTHCHECK_URL"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout",
			Aliases: []string{"t"},
			Value:   client.DefaultTimeout,
		},
	},
	Action: healthcheckAction,
}

func healthcheckAction(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("url")
	cfg, err := config.FromEnvironment()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr == "" {
		addr = client.LocalAddr(cfg)
	}

	c, err := client.New(client.Config{
		Logger:     slog.New(logging.SetupHandlerText(cfg.LogLevel, cmd.Root().ErrWriter)),
		ServerAddr: addr,
		Timeout:    cmd.Duration("timeout"),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout")+time.Second)
	defer cancel()

	hs, err := c.Check(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "%s: %s\n", hs.Status, hs.Message)
	return err
}
