package main

import (
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/logging"
	"github.com/atlanticdynamic/frontdoor/internal/logging/writers"
)

// setupLogger builds the error log writing to target and makes it the default
// logger. An unrecognized LOG_LEVEL from cfg is reported here, once.
func setupLogger(cfg *config.Config, format logging.Format, level config.LogLevel, target string) (*slog.Logger, error) {
	w, err := writers.CreateWriter(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}
	logger := logging.SetupLogger(format, level, w)
	if cfg.IgnoredLogLevel != "" {
		logger.Warn("Unrecognized log level, using info",
			"env", config.EnvLogLevel,
			"value", cfg.IgnoredLogLevel,
		)
	}
	return logger, nil
}
