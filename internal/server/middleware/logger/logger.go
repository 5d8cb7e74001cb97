// Package logger provides the HTTP access log middleware.
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atlanticdynamic/frontdoor/internal/server/middleware/requestid"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

const (
	attrMethod    = "method"
	attrPath      = "path"
	attrQuery     = "query"
	attrClientIP  = "client_ip"
	attrProtocol  = "protocol"
	attrStatus    = "status"
	attrDuration  = "duration"
	attrBodySize  = "body_size"
	attrRequestID = "request_id"

	logMessage = "HTTP request"
)

// lgr is implemented by slog.Logger
type lgr interface {
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

// AccessLogger writes one log line per request.
type AccessLogger struct {
	logger lgr
}

// NewAccessLogger creates the access log middleware writing to handler.
func NewAccessLogger(handler slog.Handler) *AccessLogger {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &AccessLogger{
		logger: slog.New(handler).WithGroup("http"),
	}
}

// Middleware returns the middleware function
func (al *AccessLogger) Middleware() httpserver.HandlerFunc {
	return func(rp *httpserver.RequestProcessor) {
		r := rp.Request()
		start := time.Now()
		rp.Next()

		al.Log(r.Context(), buildAttrs(r, rp.Writer(), time.Since(start)))
	}
}

// Log writes the entry, at warn for 4xx and error for 5xx responses
func (al *AccessLogger) Log(ctx context.Context, attrs []slog.Attr) {
	if len(attrs) == 0 {
		return
	}

	level := slog.LevelInfo
	for _, attr := range attrs {
		if attr.Key != attrStatus {
			continue
		}
		if status, ok := attr.Value.Any().(int64); ok {
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
		}
		break
	}

	al.logger.LogAttrs(ctx, level, logMessage, attrs...)
}

func buildAttrs(r *http.Request, rw httpserver.ResponseWriter, duration time.Duration) []slog.Attr {
	status := rw.Status()
	if status == 0 {
		status = http.StatusOK
	}

	attrs := make([]slog.Attr, 0, 9)
	attrs = append(attrs,
		slog.String(attrMethod, r.Method),
		slog.String(attrPath, r.URL.Path),
	)
	if r.URL.RawQuery != "" {
		attrs = append(attrs, slog.String(attrQuery, r.URL.RawQuery))
	}
	attrs = append(attrs,
		slog.String(attrClientIP, clientIP(r)),
		slog.String(attrProtocol, r.Proto),
		slog.Int(attrStatus, status),
		slog.Duration(attrDuration, duration),
		slog.Int(attrBodySize, rw.Size()),
	)
	if id := r.Header.Get(requestid.HeaderName); id != "" {
		attrs = append(attrs, slog.String(attrRequestID, id))
	}
	return attrs
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
