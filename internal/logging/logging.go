// Package logging builds the structured loggers used across tagnav.
//
// Configuration comes from the environment:
//   - TAGNAV_LOG_LEVEL: debug, info, warn, error (default: warn)
//   - TAGNAV_LOG_FORMAT: text, json (default: text)
//
// Output goes to stderr so stdout stays free for candidate listings and the
// MCP protocol stream.
package logging

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

const (
	envLevel  = "TAGNAV_LOG_LEVEL"
	envFormat = "TAGNAV_LOG_FORMAT"
)

// Log levels re-exported for convenience
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Config holds logging configuration
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
	Source string    // component name attached to every record
}

// DefaultConfig returns the defaults for the given component. Tag scanning
// is quiet unless something is skipped, hence warn.
func DefaultConfig(source string) Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
		Source: source,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelWarn, false
}

// LoadConfigFromEnv returns DefaultConfig with TAGNAV_LOG_LEVEL and
// TAGNAV_LOG_FORMAT applied. Unknown values are ignored.
func LoadConfigFromEnv(source string) Config {
	cfg := DefaultConfig(source)

	if level, ok := ParseLevel(os.Getenv(envLevel)); ok {
		cfg.Level = level
	}
	if format := os.Getenv(envFormat); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	return cfg
}

// New creates a logger for cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("source", cfg.Source)
}

// Default returns a logger configured from the environment.
func Default(source string) *slog.Logger {
	return New(LoadConfigFromEnv(source))
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}
