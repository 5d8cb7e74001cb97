// Package middleware holds the request middleware attached to every route.
package middleware

import "github.com/robbyt/go-supervisor/runnables/httpserver"

// Instance is the interface all middleware instances must implement
type Instance interface {
	Middleware() httpserver.HandlerFunc
}

// Chain collects the HandlerFuncs of the given instances in order, skipping nils.
func Chain(instances ...Instance) []httpserver.HandlerFunc {
	out := make([]httpserver.HandlerFunc, 0, len(instances))
	for _, inst := range instances {
		if inst == nil {
			continue
		}
		out = append(out, inst.Middleware())
	}
	return out
}
