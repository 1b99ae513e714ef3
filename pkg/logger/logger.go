// Package logger wraps charmbracelet/log with a trace level, named level
// parsing and a process-wide default instance.
package logger

import (
	"os"

	charm "github.com/charmbracelet/log"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/schema"
)

// LabLogger wraps a charmbracelet logger and adds trace-level support.
type LabLogger struct {
	*charm.Logger
}

// NewLabLogger wraps an existing charm logger.
func NewLabLogger(l *charm.Logger) *LabLogger {
	return &LabLogger{Logger: l}
}

// Trace logs a message at trace level.
func (l *LabLogger) Trace(msg any, keyvals ...any) {
	l.Logger.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func (l *LabLogger) Tracef(format string, args ...any) {
	l.Logger.Logf(TraceLevel, format, args...)
}

// GetLevelString returns the current level name in lowercase. Charm does not
// know about trace, so it is special-cased.
func (l *LabLogger) GetLevelString() string {
	level := l.GetLevel()
	if level == TraceLevel {
		return "trace"
	}
	return level.String()
}

// InitFromConfig applies the logs settings from the CLI configuration to the
// default logger: level, destination and the styles carrying the trace label.
func InitFromConfig(cfg *schema.Configuration) error {
	level, err := ParseLogLevel(cfg.Logs.Level)
	if err != nil {
		return err
	}

	l := Default()
	l.SetLevel(level.CharmLevel())
	l.SetStyles(DefaultStyles())

	switch cfg.Logs.File {
	case "", "/dev/stderr":
		l.SetOutput(os.Stderr)
	case "/dev/stdout":
		l.SetOutput(os.Stdout)
	default:
		f, err := os.OpenFile(cfg.Logs.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return errUtils.Build(errUtils.ErrOpenFile).
				WithCause(err).
				WithContext("path", cfg.Logs.File).
				Err()
		}
		l.SetOutput(f)
	}

	return nil
}
