package cqrs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

// Define constants for context keys
const (
	dispatchIDKey    ctxKey = "dispatchID"
	correlationIDKey ctxKey = "correlationID"
	messageTypeKey   ctxKey = "messageType"
	dispatchedAtKey  ctxKey = "dispatchedAt"
)

// withDispatch records the metadata of a dispatch on the context. The buses
// call this once per dispatch, before any decorator runs, so decorators and
// handlers can read a stable dispatch identity. When no correlation ID is
// present yet, the dispatch ID doubles as the correlation ID.
func withDispatch(ctx context.Context, id uuid.UUID, messageType string) context.Context {
	ctx = context.WithValue(ctx, dispatchIDKey, id)
	ctx = context.WithValue(ctx, messageTypeKey, messageType)
	ctx = context.WithValue(ctx, dispatchedAtKey, time.Now())
	if CorrelationIDFromContext(ctx) == uuid.Nil {
		ctx = context.WithValue(ctx, correlationIDKey, id)
	}
	return ctx
}

// WithCorrelationID attaches a correlation ID to the context. Set it before
// dispatching to correlate a series of commands and queries belonging to the
// same logical operation; otherwise every dispatch starts its own.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// DispatchIDFromContext returns the DispatchID or uuid.Nil if not present
func DispatchIDFromContext(ctx context.Context) uuid.UUID {
	if v := ctx.Value(dispatchIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// CorrelationIDFromContext returns the CorrelationID or uuid.Nil if not present
func CorrelationIDFromContext(ctx context.Context) uuid.UUID {
	if v := ctx.Value(correlationIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// MessageTypeFromContext returns the dispatched message type or "" if not present
func MessageTypeFromContext(ctx context.Context) string {
	if v := ctx.Value(messageTypeKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// DispatchedAtFromContext returns the dispatch time or zero time if not present
func DispatchedAtFromContext(ctx context.Context) time.Time {
	if v := ctx.Value(dispatchedAtKey); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
