package logger

import (
	"io"
	"math"

	charm "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// Level is the charmbracelet log level used throughout labctl.
type Level = charm.Level

// Log levels. TraceLevel extends charm's scale one step below debug for
// logging raw gcloud invocations and their output.
const (
	TraceLevel Level = charm.DebugLevel - 1
	DebugLevel Level = charm.DebugLevel
	InfoLevel  Level = charm.InfoLevel
	WarnLevel  Level = charm.WarnLevel
	ErrorLevel Level = charm.ErrorLevel
	FatalLevel Level = charm.FatalLevel

	// offLevel is above every level charm knows, silencing all output.
	offLevel Level = Level(math.MaxInt32)
)

// LogLevel is the user-facing log level name accepted in config files and
// on the command line.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// ErrInvalidLogLevel indicates a log level name outside the supported set.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLogLevel validates a user-supplied log level name. An empty string
// defaults to Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch LogLevel(logLevel) {
	case LogLevelOff, LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning:
		return LogLevel(logLevel), nil
	default:
		return "", errors.WithHintf(
			errors.Mark(errors.Newf("invalid log level '%s'", logLevel), ErrInvalidLogLevel),
			"supported log levels are %s, %s, %s, %s, %s",
			LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff)
	}
}

// CharmLevel maps the user-facing level name onto charm's numeric scale.
func (l LogLevel) CharmLevel() Level {
	switch l {
	case LogLevelOff:
		return offLevel
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelWarning:
		return WarnLevel
	default:
		return InfoLevel
	}
}

// DefaultStyles returns charm's default styles with the trace level label
// registered so trace lines render with a TRCE prefix.
func DefaultStyles() *charm.Styles {
	styles := charm.DefaultStyles()
	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("63"))
	return styles
}

// Package-level logging functions operating on the default logger.

// Trace logs a message at trace level.
func Trace(msg any, keyvals ...any) {
	Default().Trace(msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func Tracef(format string, args ...any) {
	Default().Tracef(format, args...)
}

// Debug logs a message at debug level.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs a message at info level.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs a message at warn level.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs a message at error level.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}

// GetLevel returns the default logger's current level.
func GetLevel() Level {
	return Default().GetLevel()
}

// SetLevel sets the default logger's level.
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// SetOutput redirects the default logger's output.
func SetOutput(w io.Writer) {
	Default().SetOutput(w)
}
