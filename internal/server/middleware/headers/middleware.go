// Package headers sets response headers through the go-supervisor headers
// middleware.
package headers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	supervisorHeaders "github.com/robbyt/go-supervisor/runnables/httpserver/middleware/headers"
)

// Sentinel errors for headers middleware.
var (
	ErrNilConfig     = errors.New("headers config cannot be nil")
	ErrInvalidConfig = errors.New("invalid headers config")
)

// Config lists the response header changes.
type Config struct {
	SetHeaders map[string]string
}

// Validate rejects empty header names and values containing line breaks
func (c *Config) Validate() error {
	var errs []error
	for name, value := range c.SetHeaders {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("empty header name"))
			continue
		}
		if strings.ContainsAny(name, " \t\r\n:") {
			errs = append(errs, fmt.Errorf("invalid header name %q", name))
		}
		if strings.ContainsAny(value, "\r\n") {
			errs = append(errs, fmt.Errorf("invalid value for header %q", name))
		}
	}
	return errors.Join(errs...)
}

// HeadersMiddleware manipulates HTTP response headers.
type HeadersMiddleware struct {
	id         string
	middleware httpserver.HandlerFunc
}

// NewHeadersMiddleware creates a new HeadersMiddleware instance.
func NewHeadersMiddleware(id string, cfg *Config) (*HeadersMiddleware, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var operations []supervisorHeaders.HeaderOperation
	if len(cfg.SetHeaders) > 0 {
		h := make(http.Header, len(cfg.SetHeaders))
		for key, value := range cfg.SetHeaders {
			h.Set(key, value)
		}
		operations = append(operations, supervisorHeaders.WithSet(h))
	}

	return &HeadersMiddleware{
		id:         id,
		middleware: supervisorHeaders.NewWithOperations(operations...),
	}, nil
}

// ID returns the middleware identifier
func (hm *HeadersMiddleware) ID() string {
	return hm.id
}

// Middleware returns the middleware function that manipulates response headers.
func (hm *HeadersMiddleware) Middleware() httpserver.HandlerFunc {
	return hm.middleware
}
