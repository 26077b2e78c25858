// Package chanlog provides the structured logger every component in
// this driver uses, replacing the inert colour-level stub the
// original tool carried.
package chanlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a thin alias so callers don't need to import
// charmbracelet/log directly.
type Logger = log.Logger

// root is the process-wide base logger; components get their own
// child via For so log lines carry a "component" field.
var root = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
})

// For returns a logger tagged with the given component name, e.g.
// "reactor" or "position-receiver".
func For(component string) *Logger {
	return root.With("component", component)
}

// SetLevel adjusts the process-wide minimum log level, used by the
// CLI's --verbose flag.
func SetLevel(level log.Level) {
	root.SetLevel(level)
}

// DebugLevel re-exports charmbracelet/log's debug level so callers
// don't need their own import of that package just to toggle it.
const DebugLevel = log.DebugLevel
