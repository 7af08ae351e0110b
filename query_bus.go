package cqrs

import (
	"context"
	"fmt"
	"sync"
)

// QueryBus acts as a central registry for query handlers. It stores
// handlers keyed by their query and result types, allowing multiple
// query types to be registered in a single bus.
//
// Handlers are executed via a typed GenericQueryGateway or the Ask helper.
//
// Example Usage:
//
//	bus := NewQueryBus()
//	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q MyQuery) (*MyResult, error) {
//	    return &MyResult{Value: 42}, nil
//	}))
type QueryBus struct {
	handlers map[string]any
	cfg      busConfig
	mu       sync.RWMutex
}

// NewQueryBus creates a new QueryBus instance.
func NewQueryBus(opts ...BusOption) *QueryBus {
	return &QueryBus{
		handlers: make(map[string]any),
		cfg:      newBusConfig(opts),
	}
}

func queryKey(queryType, resultType string) string {
	return queryType + "|" + resultType
}

// queryRegisterConfig collects the per-registration pipeline of a query handler.
type queryRegisterConfig[T Query, R any] struct {
	middleware []QueryMiddleware[T, R]
	decorators []string
}

// QueryRegisterOption customizes a single query handler registration.
type QueryRegisterOption[T Query, R any] func(*queryRegisterConfig[T, R])

// WithQueryMiddleware attaches typed middleware to the handler being
// registered, first middleware outermost, inside any named decorators.
func WithQueryMiddleware[T Query, R any](middleware ...QueryMiddleware[T, R]) QueryRegisterOption[T, R] {
	return func(c *queryRegisterConfig[T, R]) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithQueryDecorators requests named decorators from the bus registry for the
// handler being registered. An unrecognized name makes registration fail with
// an UnknownDecoratorError.
func WithQueryDecorators[T Query, R any](names ...string) QueryRegisterOption[T, R] {
	return func(c *queryRegisterConfig[T, R]) {
		c.decorators = append(c.decorators, names...)
	}
}

// RegisterQueryHandler registers a QueryHandler for a specific query
// and result type on the provided QueryBus.
//
// The key for storage is derived from the types of T and R, so the same query
// type may be registered once per distinct result type. Registering the same
// (query, result) pair twice returns a DuplicateHandlerError; the bus never
// silently replaces a handler.
//
// Type Parameters:
//   - T: The query type implementing Query.
//   - R: The result type.
//
// Example Usage:
//
//	bus := NewQueryBus()
//	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q MyQuery) (*MyResult, error) {
//	    return &MyResult{Value: 42}, nil
//	}))
func RegisterQueryHandler[T Query, R any](bus *QueryBus, handler QueryHandler[T, R], opts ...QueryRegisterOption[T, R]) error {
	key := queryKey(TypeName(*new(T)), TypeName(*new(R)))
	if handler == nil {
		return fmt.Errorf("register query handler for %s: %w", key, ErrNilHandler)
	}

	cfg := &queryRegisterConfig[T, R]{}
	for _, opt := range opts {
		opt(cfg)
	}

	chain := ChainQueryMiddleware(handler, cfg.middleware...)

	decorators, err := bus.cfg.decorators.queryDecorators(bus.cfg.pipeline(), cfg.decorators)
	if err != nil {
		return fmt.Errorf("register query handler for %s: %w", key, err)
	}

	stored := chain
	if len(decorators) > 0 {
		// Named decorators operate on the type-erased invoker, so the typed
		// handler is unwrapped around them and re-typed afterwards.
		erased := func(ctx context.Context, qry Query) (any, error) {
			q, ok := qry.(T)
			if !ok {
				return nil, fmt.Errorf("expected query type %s but got %s: %w", TypeName(*new(T)), TypeName(qry), ErrHandlerTypeMismatch)
			}
			return chain.HandleQuery(ctx, q)
		}
		decorated := chainQueryDecorators(erased, decorators)
		stored = NewQueryHandlerFunc(func(ctx context.Context, qry T) (R, error) {
			v, err := decorated(ctx, qry)
			if v == nil {
				var zero R
				return zero, err
			}
			r, ok := v.(R)
			if !ok {
				var zero R
				return zero, fmt.Errorf("decorated handler for %s returned %s: %w", key, TypeName(v), ErrHandlerTypeMismatch)
			}
			return r, err
		})
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if _, exists := bus.handlers[key]; exists {
		return &DuplicateHandlerError{MessageType: key}
	}
	bus.handlers[key] = stored
	return nil
}

// MustRegisterQueryHandler is RegisterQueryHandler but panics on error.
func MustRegisterQueryHandler[T Query, R any](bus *QueryBus, handler QueryHandler[T, R], opts ...QueryRegisterOption[T, R]) {
	if err := RegisterQueryHandler(bus, handler, opts...); err != nil {
		panic(err)
	}
}

func (b *QueryBus) lookup(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.handlers[key]
	return h, ok
}
