// Package logging builds the slog handlers used across frontdoor.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	charmlog "github.com/charmbracelet/log"
)

// Format selects how log records are encoded
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// SetupHandler returns the handler for format, anything other than json is text
func SetupHandler(format Format, logLevel config.LogLevel, writer io.Writer) slog.Handler {
	if format == FormatJSON {
		return SetupHandlerJSON(logLevel, writer)
	}
	return SetupHandlerText(logLevel, writer)
}

// SetupHandlerText configures a text slog handler with the provided writer and log level
func SetupHandlerText(logLevel config.LogLevel, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := charmlog.InfoLevel
	switch normalize(logLevel) {
	case config.LogLevelTrace:
		reportCaller = true
		reportTimestamp = true
		lvl = charmlog.DebugLevel
	case config.LogLevelDebug:
		reportTimestamp = true
		lvl = charmlog.DebugLevel
	case config.LogLevelWarn:
		lvl = charmlog.WarnLevel
	case config.LogLevelError:
		lvl = charmlog.ErrorLevel
	}

	return charmlog.NewWithOptions(writer, charmlog.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel config.LogLevel, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     SlogLevel(logLevel),
		AddSource: normalize(logLevel) == config.LogLevelTrace,
	}

	return slog.NewJSONHandler(writer, opts)
}

// SlogLevel maps a LogLevel onto the closest slog.Level, unknown values map to info
func SlogLevel(logLevel config.LogLevel) slog.Level {
	switch normalize(logLevel) {
	case config.LogLevelTrace, config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds a logger writing to writer and makes it the default
func SetupLogger(format Format, logLevel config.LogLevel, writer io.Writer) *slog.Logger {
	logger := slog.New(SetupHandler(format, logLevel, writer))
	slog.SetDefault(logger)
	return logger
}

// CaptureStandardLog points the standard library log package at the given
// logger when capture is true, or back at stderr when it is false. net/http
// reports connection level errors through that package. The returned func
// restores the previous output.
func CaptureStandardLog(logger *slog.Logger, capture bool) (restore func()) {
	prevOut := log.Writer()
	prevFlags := log.Flags()
	prevPrefix := log.Prefix()

	if capture && logger != nil {
		captured := slog.NewLogLogger(logger.Handler(), slog.LevelInfo)
		log.SetOutput(captured.Writer())
		log.SetFlags(0)
		log.SetPrefix("")
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}

	return func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		log.SetPrefix(prevPrefix)
	}
}

func normalize(logLevel config.LogLevel) config.LogLevel {
	lvl, _ := config.ParseLogLevel(string(logLevel))
	return lvl
}
