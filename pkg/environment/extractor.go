package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a ContextExtractor for the logger.
// Only emits an attribute when the context explicitly carries a mode.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env, ok := ctx.Value(contextKey{}).(Environment); ok && env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
