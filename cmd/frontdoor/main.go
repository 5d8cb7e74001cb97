package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "frontdoor",
		Version: Version,
		Usage:   "Minimal web front door with a landing page and a liveness endpoint",
		Description: "Reads PORT, HOST, DEBUG, LOG_LEVEL and WEB_CONCURRENCY from the environment. " +
			"Without a subcommand the development server is started.",
		Action: serveAction,
		Commands: []*cli.Command{
			serveCmd,
			productionCmd,
			healthcheckCmd,
			configCmd,
			versionCmd,
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
