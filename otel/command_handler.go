package otel

import (
	"context"
	"fmt"
	"time"

	"github.com/sukkergris/cqrs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WithCommandTelemetry returns middleware that wraps a CommandHandler with
// OpenTelemetry tracing and metrics.
//
// This decorator observes the execution of a command handler, producing both
// tracing spans and metrics that reflect command lifecycle, success/failure
// and processing duration.
//
// The wrapper performs the following steps for each command execution:
//  1. Starts a span for the command handling operation, named based on the command type.
//  2. Attaches base attributes such as command type and dispatch ID.
//  3. Increments the in-flight command metric before execution and decrements it after completion.
//  4. Invokes the underlying command handler.
//  5. Records command duration, sets the span status (OK or Error) and emits
//     metrics for handled and failed commands.
//
// Example Usage:
//
//	err := cqrs.Register(bus, handler, cqrs.WithMiddleware(otel.WithCommandTelemetry[CreateOrder]()))
func WithCommandTelemetry[C cqrs.Command](opts ...Option) cqrs.CommandMiddleware[C] {
	cfg := newConfig(opts)

	var zero C
	commandType := fmt.Sprintf("%T", zero)

	operation := cfg.Operation
	if operation == "" {
		operation = fmt.Sprintf("command.handle %s", commandType)
	}

	return func(next cqrs.CommandHandler[C]) cqrs.CommandHandler[C] {
		return func(ctx context.Context, cmd C) (cqrs.Result, error) {
			attr := append([]attribute.KeyValue{}, cfg.Attributes...)
			attr = append(attr,
				AttrCommandType.String(commandType),
				AttrDispatchID.String(cqrs.DispatchIDFromContext(ctx).String()),
				AttrCorrelationID.String(cqrs.CorrelationIDFromContext(ctx).String()),
			)
			if cfg.GetAttributes != nil {
				attr = append(attr, cfg.GetAttributes(ctx)...)
			}

			ctx, span := tracer.Start(ctx, operation,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attr...),
			)
			defer span.End()

			CommandsInFlight.Add(ctx, 1, metric.WithAttributes(AttrCommandType.String(commandType)))
			defer CommandsInFlight.Add(ctx, -1, metric.WithAttributes(AttrCommandType.String(commandType)))

			startTime := time.Now()
			result, err := next(ctx, cmd)

			CommandsDuration.Record(ctx, float64(time.Since(startTime).Milliseconds()), metric.WithAttributes(AttrCommandType.String(commandType)))

			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.RecordError(err)
				CommandsFailed.Add(ctx, 1, metric.WithAttributes(AttrCommandType.String(commandType)))
				return result, err
			}

			span.SetStatus(codes.Ok, "")
			CommandsHandled.Add(ctx, 1, metric.WithAttributes(AttrCommandType.String(commandType)))

			return result, nil
		}
	}
}
