package app

import (
	"log/slog"

	"github.com/treykane/infiniscroll/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// It is tagged with the component "app". Note reads, renderer failures and
// watcher scans log through it. The level comes from INFINISCROLL_LOG_LEVEL;
// set INFINISCROLL_LOG_FILE to keep log lines off the alt-screen UI.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// simultaneously logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry.
//
// Usage:
//
//	m.setStatusError("Invalid month", err, "input", value)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
