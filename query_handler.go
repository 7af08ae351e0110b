package cqrs

import (
	"context"
)

// Query is the marker interface for read requests. Like commands, queries
// carry no identity beyond their concrete type and payload; routing is by
// runtime type, and the expected result type is part of the registration key.
type Query interface{}

// QueryHandler represents a handler for a specific query type T and
// produces a result of type R. This interface allows generic, type-safe
// registration and execution of query logic.
//
// Type Parameters:
//   - T: The query type implementing Query.
//   - R: The result type, either a single value or an *Iterator.
//
// Example Usage:
//
//	type MyQuery struct { ID string }
//	type MyResult struct { Value int }
//
//	handler := NewQueryHandlerFunc(func(ctx context.Context, q MyQuery) (*MyResult, error) {
//	    return &MyResult{Value: 123}, nil
//	})
//
//	var _ QueryHandler[MyQuery, *MyResult] = handler
type QueryHandler[T Query, R any] interface {
	HandleQuery(ctx context.Context, qry T) (R, error)
}

// queryHandlerFunc is a helper type to allow ordinary functions to
// implement QueryHandler[T,R].
type queryHandlerFunc[T Query, R any] func(ctx context.Context, qry T) (R, error)

// HandleQuery calls the underlying function.
func (f queryHandlerFunc[T, R]) HandleQuery(ctx context.Context, qry T) (R, error) {
	return f(ctx, qry)
}

// NewQueryHandlerFunc creates a QueryHandler from a function.
//
// Example Usage:
//
//	handler := NewQueryHandlerFunc(func(ctx context.Context, q MyQuery) (*MyResult, error) {
//	    return &MyResult{Value: 42}, nil
//	})
func NewQueryHandlerFunc[T Query, R any](fn func(ctx context.Context, qry T) (R, error)) QueryHandler[T, R] {
	return queryHandlerFunc[T, R](fn)
}

// QueryMiddleware decorates a QueryHandler with cross-cutting behavior.
type QueryMiddleware[T Query, R any] func(next QueryHandler[T, R]) QueryHandler[T, R]

// ChainQueryMiddleware composes a query handler with an ordered list of
// middleware, first middleware outermost. With no middleware the handler is
// returned unchanged.
func ChainQueryMiddleware[T Query, R any](handler QueryHandler[T, R], middleware ...QueryMiddleware[T, R]) QueryHandler[T, R] {
	wrapped := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		wrapped = middleware[i](wrapped)
	}
	return wrapped
}
