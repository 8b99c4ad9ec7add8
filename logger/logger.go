// Package logger configures the structured logger shared by all commands.
package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type (
	LogLevel string

	// Logger defines the interface for structured logging
	Logger interface {
		Debug(msg interface{}, keyvals ...interface{})
		Info(msg interface{}, keyvals ...interface{})
		Warn(msg interface{}, keyvals ...interface{})
		Error(msg interface{}, keyvals ...interface{})
	}
)

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Levels returns the accepted level names.
func Levels() []string {
	return []string{string(DebugLevel), string(InfoLevel), string(WarnLevel), string(ErrorLevel)}
}

func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	TimeFormat string
}

// DefaultConfig logs to stdout, the channel where skipped relations have
// always been reported.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		TimeFormat: "15:04:05",
	}
}

// New returns a charm logger. A nil cfg uses DefaultConfig.
func New(cfg *Config) *charmlog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: cfg.TimeFormat != "",
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	} else {
		l.SetFormatter(charmlog.TextFormatter)
	}

	return l
}

// Discard returns a logger that drops every record.
func Discard() *charmlog.Logger {
	return New(&Config{Level: ErrorLevel, Output: io.Discard})
}

var _ Logger = (*charmlog.Logger)(nil)
