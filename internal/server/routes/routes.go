// Package routes is the route table of the front door: the landing page at
// "/" and the liveness payload at "/health".
package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/server/middleware"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

const (
	PathLanding = "/"
	PathHealth  = "/health"
)

// AllowedMethods is the Allow header value of every route
var AllowedMethods = strings.Join([]string{http.MethodGet, http.MethodHead}, ", ")

// Paths lists the served paths in registration order
func Paths() []string {
	return []string{PathLanding, PathHealth}
}

// Table owns the two routes. It is built once from the Config and holds no
// per-request state.
type Table struct {
	cfg        *config.Config
	logger     *slog.Logger
	middleware []middleware.Instance
	pid        int
	landing    string
}

// Option configures a Table
type Option func(*Table)

// WithLogHandler sets the handler for the table's own log output
func WithLogHandler(handler slog.Handler) Option {
	return func(t *Table) {
		if handler != nil {
			t.logger = slog.New(handler).WithGroup("routes")
		}
	}
}

// WithMiddleware appends middleware to every route, outermost first
func WithMiddleware(instances ...middleware.Instance) Option {
	return func(t *Table) {
		t.middleware = append(t.middleware, instances...)
	}
}

// WithPID overrides the process ID reported by /health
func WithPID(pid int) Option {
	return func(t *Table) {
		t.pid = pid
	}
}

// New creates the route table for cfg
func New(cfg *config.Config, opts ...Option) (*Table, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	t := &Table{
		cfg:    cfg,
		logger: slog.Default().WithGroup("routes"),
		pid:    os.Getpid(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.landing = t.renderLanding()
	return t, nil
}

// Routes converts the table into go-supervisor routes with the middleware
// chain attached
func (t *Table) Routes() ([]httpserver.Route, error) {
	chain := middleware.Chain(t.middleware...)

	defs := []struct {
		name    string
		path    string
		handler http.HandlerFunc
	}{
		{name: "landing", path: PathLanding, handler: t.handleLanding},
		{name: "health", path: PathHealth, handler: t.handleHealth},
	}

	routes := make([]httpserver.Route, 0, len(defs))
	for _, def := range defs {
		route, err := httpserver.NewRouteFromHandlerFunc(def.name, def.path, t.dispatch(def.path, def.handler), chain...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRouteCreation, def.name, err)
		}
		routes = append(routes, *route)
	}
	return routes, nil
}

// dispatch answers only the exact path and only GET/HEAD. The "/" pattern
// matches every path on a ServeMux, so the landing route has to reject the rest.
func (t *Table) dispatch(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			next(w, r)
		default:
			w.Header().Set("Allow", AllowedMethods)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	}
}
