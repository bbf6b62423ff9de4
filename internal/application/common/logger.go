package common

import (
	"context"
	"log/slog"
)

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

var discardLogger = slog.New(slog.DiscardHandler)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return discardLogger
}

// LoggingMiddleware puts logger in the request context and logs each
// request that fails
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		ctx = WithLogger(ctx, logger)
		resp, err := next(ctx, request)
		if err != nil {
			logger.DebugContext(ctx, "request failed",
				slog.String("request", RequestName(request)),
				slog.Any("error", err))
		}
		return resp, err
	}
}
