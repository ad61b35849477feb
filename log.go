package widgetstore

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "widgetstore",
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// WithContextLogger returns a context carrying l. Store operations called
// with that context log to l instead of the store's own logger.
func WithContextLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext returns the logger attached to ctx, or fallback.
func LoggerFromContext(ctx context.Context, fallback *log.Logger) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return fallback
}
