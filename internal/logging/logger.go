package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional rotated log file.
type FileConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Ephemeral deletes the log files when the logger is cleaned up.
	Ephemeral bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	var output = out

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues builds a logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// MEDUSA_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// MEDUSA_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("MEDUSA_LOG_LEVEL"), os.Getenv("MEDUSA_LOG_FORMAT"))
}

// NewWithFile creates a logger that writes to stderr and to a rotated file.
// The returned cleanup closes the file, deleting it when fileCfg.Ephemeral
// is set; it is never nil.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	const logDirPerm = 0o755

	if fileCfg.Dir == "" {
		return New(cfg), func() {}, nil
	}
	if err := os.MkdirAll(fileCfg.Dir, logDirPerm); err != nil {
		return New(cfg), func() {}, fmt.Errorf("create log dir %s: %w", fileCfg.Dir, err)
	}

	fileCfg.Dir = filepath.Clean(fileCfg.Dir)
	sink, err := OpenFileSink(fileCfg)
	if err != nil {
		return New(cfg), func() {}, err
	}

	var console io.Writer = os.Stderr
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
	}

	// The file always receives JSON so it can be grepped with jq.
	multi := zerolog.MultiLevelWriter(console, sink)
	logger := zerolog.New(multi).Level(cfg.Level).With().Timestamp().Logger()

	cleanup := func() {
		if err := sink.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "medusa: closing log file: %v\n", err)
		}
	}
	return logger, cleanup, nil
}

// TruncateURL shortens a URL for log output.
func TruncateURL(rawURL string, maxLen int) string {
	if maxLen <= 3 || len(rawURL) <= maxLen {
		return rawURL
	}
	return rawURL[:maxLen-3] + "..."
}
