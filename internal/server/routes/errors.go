package routes

import "errors"

var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrRouteCreation = errors.New("failed to create route")
)
