// Package httpserver wraps the go-supervisor HTTP runnable that serves the
// route table on a single listen address.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable  = (*HTTPServer)(nil)
	_ supervisor.Stateable = (*HTTPServer)(nil)
)

// TimeoutOptions contains timeout configuration for the HTTP server
type TimeoutOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DrainTimeout time.Duration
}

// DefaultTimeouts returns the timeouts used by both launch modes
func DefaultTimeouts() TimeoutOptions {
	return TimeoutOptions{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		DrainTimeout: 5 * time.Second,
	}
}

// serverImplementation abstracts the go-supervisor httpserver.Runner
type serverImplementation interface {
	Run(ctx context.Context) error
	Stop()
	GetState() string
	IsReady() bool
	GetStateChan(ctx context.Context) <-chan string
}

// HTTPServer owns one listener. Routes and address are fixed at construction.
type HTTPServer struct {
	id       string
	address  string
	server   serverImplementation
	logger   *slog.Logger
	routes   []httpserver.Route
	timeouts TimeoutOptions

	// listen is net.Listen, swapped in tests
	listen func(network, address string) (net.Listener, error)
}

// NewHTTPServer creates an HTTP server for the given address, routes and timeouts
func NewHTTPServer(
	id, address string,
	routes []httpserver.Route,
	timeouts TimeoutOptions,
	logger *slog.Logger,
) (*HTTPServer, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}
	if logger == nil {
		logger = slog.Default().WithGroup("httpserver").With("id", id)
	}

	s := &HTTPServer{
		id:       id,
		address:  address,
		routes:   routes,
		timeouts: timeouts,
		logger:   logger,
		listen:   net.Listen,
	}

	if err := s.initializeRunner(); err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP server runner: %w", err)
	}

	return s, nil
}

// initializeRunner creates the underlying httpserver.Runner
func (s *HTTPServer) initializeRunner() error {
	configCallback := func() (*httpserver.Config, error) {
		options := []httpserver.ConfigOption{}
		if s.timeouts.ReadTimeout > 0 {
			options = append(options, httpserver.WithReadTimeout(s.timeouts.ReadTimeout))
		}
		if s.timeouts.WriteTimeout > 0 {
			options = append(options, httpserver.WithWriteTimeout(s.timeouts.WriteTimeout))
		}
		if s.timeouts.IdleTimeout > 0 {
			options = append(options, httpserver.WithIdleTimeout(s.timeouts.IdleTimeout))
		}
		if s.timeouts.DrainTimeout > 0 {
			options = append(options, httpserver.WithDrainTimeout(s.timeouts.DrainTimeout))
		}

		cfg, err := httpserver.NewConfig(s.address, s.routes, options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP server config: %w", err)
		}
		return cfg, nil
	}

	runner, err := httpserver.NewRunner(
		httpserver.WithConfigCallback(configCallback),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server runner: %w", err)
	}

	s.server = runner
	return nil
}

// String returns a unique identifier for this server
func (s *HTTPServer) String() string {
	return fmt.Sprintf("HTTPServer[%s]", s.id)
}

// CheckBind opens and closes the listen address so an unusable address fails
// with ErrBindFailed before the runner starts.
func (s *HTTPServer) CheckBind() error {
	ln, err := s.listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBindFailed, s.address, err)
	}
	if err := ln.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBindFailed, s.address, err)
	}
	return nil
}

// Run binds the listener and serves until ctx is canceled or Stop is called
func (s *HTTPServer) Run(ctx context.Context) error {
	if err := s.CheckBind(); err != nil {
		return err
	}

	s.logger.Info("Starting HTTP server", "address", s.address, "routes", len(s.routes))
	if err := s.server.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServeFailed, err)
	}
	return nil
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	s.logger.Info("Stopping HTTP server", "address", s.address)
	s.server.Stop()
}

// GetState returns the current state of the server
func (s *HTTPServer) GetState() string {
	if s.server == nil {
		return "unknown"
	}
	return s.server.GetState()
}

// IsRunning returns whether the server is running
func (s *HTTPServer) IsRunning() bool {
	if s.server == nil {
		return false
	}
	return s.server.IsReady()
}

// GetStateChan returns a channel that emits state changes
func (s *HTTPServer) GetStateChan(ctx context.Context) <-chan string {
	if s.server == nil {
		ch := make(chan string)
		go func() {
			<-ctx.Done()
			close(ch)
		}()
		return ch
	}
	return s.server.GetStateChan(ctx)
}

// GetID returns the ID of this HTTP server
func (s *HTTPServer) GetID() string {
	return s.id
}

// GetAddress returns the address this server listens on
func (s *HTTPServer) GetAddress() string {
	return s.address
}
