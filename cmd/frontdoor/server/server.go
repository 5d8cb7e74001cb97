// Package server brings the route table online, either as a single
// in-process listener or under the go-supervisor process supervisor.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/logging"
	"github.com/atlanticdynamic/frontdoor/internal/logging/writers"
	"github.com/atlanticdynamic/frontdoor/internal/server/httpserver"
	"github.com/atlanticdynamic/frontdoor/internal/server/middleware"
	"github.com/atlanticdynamic/frontdoor/internal/server/middleware/headers"
	accesslog "github.com/atlanticdynamic/frontdoor/internal/server/middleware/logger"
	"github.com/atlanticdynamic/frontdoor/internal/server/middleware/requestid"
	"github.com/atlanticdynamic/frontdoor/internal/server/routes"
	"github.com/robbyt/go-supervisor/supervisor"
)

const serverID = "frontdoor"

type options struct {
	accessLog io.Writer
	timeouts  httpserver.TimeoutOptions
}

// Option customizes Run
type Option func(*options)

// WithAccessLogWriter overrides the access log target chosen by the profile
func WithAccessLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.accessLog = w
	}
}

// WithTimeouts overrides the HTTP server timeouts
func WithTimeouts(t httpserver.TimeoutOptions) Option {
	return func(o *options) {
		o.timeouts = t
	}
}

// Run serves the route table for cfg until ctx is canceled. The logger is the
// error log. A bind failure returns an error wrapping httpserver.ErrBindFailed
// before anything is served.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config, mode Mode, opts ...Option) error {
	if logger == nil {
		logger = slog.Default()
	}
	o := &options{timeouts: httpserver.DefaultTimeouts()}
	for _, opt := range opts {
		opt(o)
	}

	profile := NewProfile(cfg)
	logHandler := logger.Handler()

	accessWriter := o.accessLog
	if accessWriter == nil {
		w, err := writers.CreateWriter(profile.AccessLog)
		if err != nil {
			return fmt.Errorf("failed to open access log: %w", err)
		}
		accessWriter = w
	}

	table, err := newRouteTable(cfg, logHandler, accessWriter)
	if err != nil {
		return err
	}
	httpRoutes, err := table.Routes()
	if err != nil {
		return fmt.Errorf("failed to build routes: %w", err)
	}

	server, err := httpserver.NewHTTPServer(
		serverID,
		cfg.Address(),
		httpRoutes,
		o.timeouts,
		logger.WithGroup("httpserver").With("id", serverID),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	if err := server.CheckBind(); err != nil {
		return err
	}

	switch mode {
	case ModeProduction:
		return runSupervised(ctx, logger, profile, server)
	case ModeDevelopment, "":
		logger.Info("Starting development server", "address", cfg.Address(), "debug", cfg.Debug)
		if err := server.Run(ctx); err != nil {
			return err
		}
		logger.Info("Server shutdown complete")
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func newRouteTable(
	cfg *config.Config,
	logHandler slog.Handler,
	accessWriter io.Writer,
) (*routes.Table, error) {
	security, err := headers.NewHeadersMiddleware("security", &headers.Config{
		SetHeaders: map[string]string{"X-Content-Type-Options": "nosniff"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create headers middleware: %w", err)
	}

	chain := []middleware.Instance{requestid.New(requestid.WithLogHandler(logHandler))}
	if accessWriter != io.Discard {
		chain = append(chain, accesslog.NewAccessLogger(logging.SetupHandlerText(config.LogLevelInfo, accessWriter)))
	}
	chain = append(chain, security)

	table, err := routes.New(cfg, routes.WithLogHandler(logHandler), routes.WithMiddleware(chain...))
	if err != nil {
		return nil, fmt.Errorf("failed to create route table: %w", err)
	}
	return table, nil
}

// runSupervised hands the server to go-supervisor, which owns signal
// handling and graceful shutdown.
func runSupervised(ctx context.Context, logger *slog.Logger, profile Profile, server *httpserver.HTTPServer) error {
	if profile.Workers > 0 {
		prev := runtime.GOMAXPROCS(profile.Workers)
		defer runtime.GOMAXPROCS(prev)
	}

	restore := logging.CaptureStandardLog(logger, profile.CaptureOutput)
	defer restore()

	logger.Info("Starting production server",
		"address", server.GetAddress(),
		"log_level", profile.LogLevel,
		"access_log", profile.AccessLogEnabled(),
		"capture_output", profile.CaptureOutput,
		"workers", runtime.GOMAXPROCS(0),
	)

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(logger.Handler()),
		supervisor.WithRunnables(server),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}
