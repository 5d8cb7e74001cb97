package server

import (
	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/logging"
	"github.com/atlanticdynamic/frontdoor/internal/logging/writers"
)

// Mode selects how the route table is brought online
type Mode string

const (
	// ModeDevelopment runs a single in-process listener
	ModeDevelopment Mode = "development"
	// ModeProduction hands the listener to the process supervisor
	ModeProduction Mode = "production"
)

// Profile is the logging and process setup derived from the Config.
type Profile struct {
	LogFormat     logging.Format
	LogLevel      config.LogLevel
	ErrorLog      string
	AccessLog     string
	CaptureOutput bool
	Workers       int
}

// NewProfile derives the launch profile. The error log is JSON for log
// collectors. Debugging turns on the access log, the debug log level and
// output capture; otherwise the access log is off.
func NewProfile(cfg *config.Config) Profile {
	p := Profile{
		LogFormat: logging.FormatJSON,
		LogLevel:  config.LogLevelInfo,
		ErrorLog:  string(writers.WriterTypeStderr),
		AccessLog: string(writers.WriterTypeDiscard),
		Workers:   cfg.Workers,
	}
	if cfg.Debug {
		p.LogLevel = config.LogLevelDebug
		p.AccessLog = "-"
		p.CaptureOutput = true
	}
	return p
}

// AccessLogEnabled reports whether the profile writes an access log
func (p Profile) AccessLogEnabled() bool {
	return writers.ParseWriterType(p.AccessLog) != writers.WriterTypeDiscard
}
