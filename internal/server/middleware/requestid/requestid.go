// Package requestid tags every request and response with an X-Request-Id.
package requestid

import (
	"log/slog"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

// HeaderName is the header carrying the request ID in both directions
const HeaderName = "X-Request-Id"

const maxIncomingLength = 128

// Generator produces new request IDs
type Generator func() (string, error)

// RequestID echoes a well-formed incoming X-Request-Id or generates a UUIDv4.
type RequestID struct {
	generate Generator
	logger   *slog.Logger
}

// Option configures a RequestID
type Option func(*RequestID)

// WithGenerator replaces the UUIDv4 generator
func WithGenerator(g Generator) Option {
	return func(r *RequestID) {
		if g != nil {
			r.generate = g
		}
	}
}

// WithLogHandler sets the handler used to report generator failures
func WithLogHandler(handler slog.Handler) Option {
	return func(r *RequestID) {
		if handler != nil {
			r.logger = slog.New(handler).WithGroup("requestid")
		}
	}
}

// New creates the request ID middleware
func New(opts ...Option) *RequestID {
	r := &RequestID{
		generate: newUUID,
		logger:   slog.Default().WithGroup("requestid"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newUUID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Middleware returns the middleware function
func (m *RequestID) Middleware() httpserver.HandlerFunc {
	return func(rp *httpserver.RequestProcessor) {
		r := rp.Request()

		id := strings.TrimSpace(r.Header.Get(HeaderName))
		if !valid(id) {
			generated, err := m.generate()
			if err != nil {
				// a missing ID never fails the request
				m.logger.Warn("Failed to generate request ID", "error", err)
				rp.Next()
				return
			}
			id = generated
			r.Header.Set(HeaderName, id)
		}

		rp.Writer().Header().Set(HeaderName, id)
		rp.Next()
	}
}

func valid(id string) bool {
	if id == "" || len(id) > maxIncomingLength {
		return false
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
