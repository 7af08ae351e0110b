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

// WithQueryTelemetry returns middleware that wraps a QueryHandler with
// OpenTelemetry tracing and metrics.
//
// This decorator observes the execution of a query handler, producing both
// tracing spans and metrics that reflect query lifecycle, success/failure
// and processing duration.
//
// Example Usage:
//
//	err := cqrs.RegisterQueryHandler(bus, handler,
//	    cqrs.WithQueryMiddleware(otel.WithQueryTelemetry[GetOrder, *Order]()))
func WithQueryTelemetry[T cqrs.Query, R any](opts ...Option) cqrs.QueryMiddleware[T, R] {
	cfg := newConfig(opts)

	var zero T
	queryType := fmt.Sprintf("%T", zero)

	operation := cfg.Operation
	if operation == "" {
		operation = fmt.Sprintf("query.handle %s", queryType)
	}

	return func(next cqrs.QueryHandler[T, R]) cqrs.QueryHandler[T, R] {
		return &telemetryQueryHandler[T, R]{
			next:      next,
			queryType: queryType,
			operation: operation,
			cfg:       cfg,
		}
	}
}

type telemetryQueryHandler[T cqrs.Query, R any] struct {
	next      cqrs.QueryHandler[T, R]
	queryType string
	operation string
	cfg       *config
}

func (h *telemetryQueryHandler[T, R]) HandleQuery(ctx context.Context, qry T) (R, error) {
	attr := append([]attribute.KeyValue{}, h.cfg.Attributes...)
	attr = append(attr,
		AttrQueryType.String(h.queryType),
		AttrResultType.String(fmt.Sprintf("%T", *new(R))),
		AttrDispatchID.String(cqrs.DispatchIDFromContext(ctx).String()),
	)
	if h.cfg.GetAttributes != nil {
		attr = append(attr, h.cfg.GetAttributes(ctx)...)
	}

	ctx, span := tracer.Start(ctx, h.operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attr...),
	)
	defer span.End()

	QueriesInFlight.Add(ctx, 1, metric.WithAttributes(AttrQueryType.String(h.queryType)))
	defer QueriesInFlight.Add(ctx, -1, metric.WithAttributes(AttrQueryType.String(h.queryType)))

	startTime := time.Now()
	result, err := h.next.HandleQuery(ctx, qry)

	QueriesDuration.Record(ctx, float64(time.Since(startTime).Milliseconds()), metric.WithAttributes(AttrQueryType.String(h.queryType)))

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		QueriesFailed.Add(ctx, 1, metric.WithAttributes(AttrQueryType.String(h.queryType)))
		return result, err
	}

	span.SetStatus(codes.Ok, "")
	QueriesHandled.Add(ctx, 1, metric.WithAttributes(AttrQueryType.String(h.queryType)))

	return result, nil
}
