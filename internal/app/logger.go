package app

import (
	"io"
	"log/slog"
)

// newLogger creates a logger for one App instance. It does not touch the
// global default, so tests can run apps with isolated log capture. Verbose
// runs log at debug, everything else at info.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
