package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default LabLogger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	// Initialize with charm's default logger.
	defaultLogger.Store(NewLabLogger(charm.Default()))
}

// Default returns the global default LabLogger instance.
func Default() *LabLogger {
	return defaultLogger.Load().(*LabLogger)
}

// SetDefault sets a new global default LabLogger instance.
func SetDefault(logger *LabLogger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a new LabLogger writing to stderr.
func New() *LabLogger {
	return NewLabLogger(charm.New(os.Stderr))
}
