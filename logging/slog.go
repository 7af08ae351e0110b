package logging

import (
	"context"
	"log/slog"

	"github.com/sukkergris/cqrs"
)

// WithDispatchLogging returns slog-based middleware that annotates every log
// line with the dispatch metadata the bus put on the context.
func WithDispatchLogging[C cqrs.Command](logger *slog.Logger) cqrs.CommandMiddleware[C] {
	return func(next cqrs.CommandHandler[C]) cqrs.CommandHandler[C] {
		return func(ctx context.Context, command C) (cqrs.Result, error) {
			l := logger.With(
				"message-type", cqrs.MessageTypeFromContext(ctx),
				"dispatch-id", cqrs.DispatchIDFromContext(ctx),
				"correlation-id", cqrs.CorrelationIDFromContext(ctx),
				"dispatched-at", cqrs.DispatchedAtFromContext(ctx),
			)

			l.DebugContext(ctx, "command processing started")

			result, err := next(ctx, command)

			if err != nil {
				l.ErrorContext(ctx, "error processing command", "error", err)
			} else {
				l.DebugContext(ctx, "command processed successfully")
			}

			return result, err
		}
	}
}
