package cqrs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GenericQueryGateway provides a typed interface for executing queries
// registered on a QueryBus. It implements QueryHandler[T,R], allowing
// it to be used wherever a QueryHandler is expected.
//
// Type Parameters:
//   - T: The query type implementing Query.
//   - R: The result type.
//
// Behavior Details:
//   - Lookup of the handler is done at runtime using the query and result
//     types. This is a deliberate runtime lookup: the static type at the call
//     site may be the Query interface while the handler map is keyed by
//     concrete type.
//   - Returns an error if no handler is registered or if a type mismatch occurs.
//
// Example Usage:
//
//	bus := NewQueryBus()
//	_ = RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q MyQuery) (*MyResult, error) {
//	    return &MyResult{Value: 123}, nil
//	}))
//
//	gateway := NewQueryGateway[MyQuery, *MyResult](bus)
//	result, err := gateway.HandleQuery(context.Background(), MyQuery{ID: "42"})
type GenericQueryGateway[T Query, R any] struct {
	bus *QueryBus
}

// NewQueryGateway creates a typed gateway for a specific query type
// backed by a QueryBus.
func NewQueryGateway[T Query, R any](bus *QueryBus) GenericQueryGateway[T, R] {
	return GenericQueryGateway[T, R]{bus: bus}
}

// HandleQuery executes the registered handler for a given query.
//
// Parameters:
//   - ctx: The context for the query execution.
//   - qry: The query value of type T.
//
// Returns:
//   - R: The result of the query, passed through from the handler unchanged.
//   - error: Non-nil if no handler is registered (matches ErrHandlerNotFound)
//     or a type mismatch occurs; handler errors pass through unchanged.
func (g GenericQueryGateway[T, R]) HandleQuery(ctx context.Context, qry T) (R, error) {
	key := queryKey(TypeName(qry), TypeName(*new(R)))

	h, ok := g.bus.lookup(key)
	if !ok {
		var zero R
		return zero, &HandlerNotFoundError{MessageType: key}
	}

	handler, ok := h.(QueryHandler[T, R])
	if !ok {
		var zero R
		return zero, fmt.Errorf("handler for %s: %w", key, ErrHandlerTypeMismatch)
	}

	ctx = withDispatch(ctx, uuid.New(), TypeName(qry))

	return handler.HandleQuery(ctx, qry)
}
