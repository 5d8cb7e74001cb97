package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/fancy"
	"github.com/atlanticdynamic/frontdoor/internal/server/routes"
	"github.com/urfave/cli/v3"
)

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "Print the configuration resolved from the environment",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.FromEnvironment()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		t := cfg.Tree()
		served := fancy.BranchNode("Routes", routes.AllowedMethods)
		for _, path := range routes.Paths() {
			served.Child(fancy.RouteText(path))
		}
		t.Child(served)

		_, err = fmt.Fprintln(cmd.Root().Writer, t.String())
		return err
	},
}
