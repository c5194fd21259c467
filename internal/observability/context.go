package observability

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// Request-scoped values set by the HTTP middleware.
const (
	CorrelationIDKey contextKey = "correlation_id"
	LoggerKey        contextKey = "logger"
)

// LoggerFromContext returns the request logger, or nil when none is attached.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return nil
}

// CorrelationID returns the request correlation ID, or "".
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
