package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnvironment loads the Config from the process environment.
func FromEnvironment() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config from the lookup function. Unset or empty variables take
// their defaults; a malformed PORT or WEB_CONCURRENCY returns a
// *ConfigurationError. An unrecognized LOG_LEVEL falls back to info and is kept
// in IgnoredLogLevel so the caller can report it once logging is up.
func Load(lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	cfg := Default()

	if raw, ok := get(EnvPort); ok {
		port, err := parseIntInRange(raw, minPort, maxPort)
		if err != nil {
			return nil, &ConfigurationError{Key: EnvPort, Value: raw, Err: fmt.Errorf("%w: %w", ErrInvalidPort, err)}
		}
		cfg.Port = port
	}

	if raw, ok := get(EnvHost); ok {
		cfg.Host = raw
	}

	if raw, ok := get(EnvLogLevel); ok {
		lvl, valid := ParseLogLevel(raw)
		switch {
		case valid:
			cfg.LogLevel = lvl
		case isDebugIndicator(raw):
			cfg.LogLevel = LogLevelDebug
		default:
			cfg.IgnoredLogLevel = raw
		}
	}

	// DEBUG wins over a quieter LOG_LEVEL, but keeps trace if requested
	if raw, ok := get(EnvDebug); ok && isDebugIndicator(raw) && !cfg.LogLevel.IsDebug() {
		cfg.LogLevel = LogLevelDebug
	}
	cfg.Debug = cfg.LogLevel.IsDebug()

	if raw, ok := get(EnvWebConcurrency); ok {
		workers, err := parseIntInRange(raw, 1, 1<<16)
		if err != nil {
			return nil, &ConfigurationError{Key: EnvWebConcurrency, Value: raw, Err: fmt.Errorf("%w: %w", ErrInvalidWorkers, err)}
		}
		cfg.Workers = workers
	}

	return cfg, nil
}

// isDebugIndicator reports whether a DEBUG or LOG_LEVEL value turns debugging on
func isDebugIndicator(raw string) bool {
	return strings.EqualFold(raw, "true") || strings.EqualFold(raw, "debug")
}

func parseIntInRange(raw string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("not an integer")
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return n, nil
}
