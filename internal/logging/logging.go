// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	cfg "github.com/tamzrod/muses-control/internal/config"
)

const (
	EnvLogLevel   = "MUSES_LOG_LEVEL"
	EnvLogNoColor = "MUSES_LOG_NOCOLOR"
	EnvLogJSON    = "MUSES_LOG_JSON"
)

// New builds the process logger from the logging section.
// Environment variables override the file. The returned closer releases
// the file sink, if any.
func New(c cfg.LoggingConfig) (zerolog.Logger, func() error) {
	applyEnvOverrides(&c)

	level, ok := parseLevel(c.Level)
	if !ok {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	if c.JSON {
		out = os.Stderr
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    c.NoColor,
			TimeFormat: time.RFC3339,
		}
	}

	closer := func() error { return nil }

	if c.File != "" {
		lj := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   c.Compress,
		}
		// the file always gets JSON
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj.Close
	}

	log := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return log, closer
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func applyEnvOverrides(c *cfg.LoggingConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if _, ok := parseLevel(v); ok {
			c.Level = v
		}
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		c.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogJSON)); ok {
		c.JSON = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
