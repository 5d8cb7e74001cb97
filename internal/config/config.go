// Package config holds the process configuration snapshot, read once from the
// environment at startup.
package config

import (
	"net"
	"strconv"
)

// Environment variable names
const (
	EnvPort           = "PORT"
	EnvHost           = "HOST"
	EnvDebug          = "DEBUG"
	EnvLogLevel       = "LOG_LEVEL"
	EnvWebConcurrency = "WEB_CONCURRENCY"
)

// Defaults used when the environment does not provide a value
const (
	DefaultPort     = 8080
	DefaultHost     = "0.0.0.0"
	DefaultLogLevel = LogLevelInfo

	minPort = 1
	maxPort = 65535
)

// Config is an immutable snapshot of the process environment. Build it with
// Load and pass it by pointer; nothing mutates it after Load returns.
type Config struct {
	Port     int
	Host     string
	Debug    bool
	LogLevel LogLevel

	// Workers is the requested parallelism for the production launch, zero
	// means the runtime default.
	Workers int

	// IgnoredLogLevel holds a LOG_LEVEL value that was not recognized, in
	// which case LogLevel stays at the default.
	IgnoredLogLevel string
}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		Port:     DefaultPort,
		Host:     DefaultHost,
		LogLevel: DefaultLogLevel,
	}
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
