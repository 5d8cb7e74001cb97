package config

import "strings"

// LogLevel represents the logging verbosity level
type LogLevel string

// Constants for LogLevel
const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ParseLogLevel normalizes a raw LOG_LEVEL value. "warning" is accepted as an
// alias for warn.
func ParseLogLevel(raw string) (LogLevel, bool) {
	lvl := LogLevel(strings.ToLower(strings.TrimSpace(raw)))
	if lvl == "warning" {
		lvl = LogLevelWarn
	}
	return lvl, lvl.IsValid()
}

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid checks if the LogLevel is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// IsDebug reports whether the level enables debug output
func (l LogLevel) IsDebug() bool {
	return l == LogLevelDebug || l == LogLevelTrace
}
