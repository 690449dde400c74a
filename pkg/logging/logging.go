// Package logging builds the service's slog.Logger from configuration.
// Every subsystem derives its own logger from the one constructed here,
// so level and format are decided once at startup.
package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// New constructs the root logger for the configured level and format.
func New(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// Level names a logging severity threshold.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Validate reports whether the level is one the handler understands.
func (l Level) Validate() error {
	if _, ok := slogLevels[l]; !ok {
		return fmt.Errorf("unknown log level %q (debug, info, warn, error)", l)
	}
	return nil
}

// ToSlogLevel maps the level onto slog's scale. Unknown levels map to
// info rather than failing, so a bad override never silences logging.
func (l Level) ToSlogLevel() slog.Level {
	if lvl, ok := slogLevels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Format names a log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Validate reports whether the format is one the handler understands.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown log format %q (text, json)", f)
	}
}
