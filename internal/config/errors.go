package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort    = errors.New("invalid port")
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// ConfigurationError reports an environment value that could not be used.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s=%q", e.Err, e.Key, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
