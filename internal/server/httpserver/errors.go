package httpserver

import "errors"

var (
	ErrNoRoutes    = errors.New("at least one route is required")
	ErrBindFailed  = errors.New("failed to bind listen address")
	ErrServeFailed = errors.New("HTTP server failed")
)
