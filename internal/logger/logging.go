// Package logger builds the prefixed charmbracelet/log loggers used
// across the engine. Everything writes to stderr; stdout belongs to
// the IPC protocol.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed logger inheriting the global level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
