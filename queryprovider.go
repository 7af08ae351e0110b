package cqrs

import (
	"context"
	"fmt"
	"sync"

	"github.com/io-da/query"
)

// ProviderHandler is the type-erased handler stored by the io-da adapters.
type ProviderHandler func(ctx context.Context, qry query.Query) (any, error)

// QueryProvider adapts handlers registered here to the io-da/query Handler
// contract, so a host already running an io-da query bus can delegate to
// this module's handlers.
type QueryProvider struct {
	handlers map[string]ProviderHandler
	mu       sync.RWMutex
}

// NewQueryProvider creates an empty QueryProvider.
func NewQueryProvider() *QueryProvider {
	return &QueryProvider{
		handlers: make(map[string]ProviderHandler),
	}
}

// RegisterProviderHandler registers a typed handler on the provider. The
// query type name is derived from T. Registering a second handler for the
// same query type returns a DuplicateHandlerError.
func RegisterProviderHandler[T query.Query](p *QueryProvider, handler func(ctx context.Context, qry T) (any, error)) error {
	name := TypeName(*new(T))
	if handler == nil {
		return fmt.Errorf("register provider handler for %s: %w", name, ErrNilHandler)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.handlers[name]; exists {
		return &DuplicateHandlerError{MessageType: name}
	}
	p.handlers[name] = func(ctx context.Context, qry query.Query) (any, error) {
		q, ok := qry.(T)
		if !ok {
			return nil, fmt.Errorf("expected query type %s but got %s: %w", name, TypeName(qry), ErrHandlerTypeMismatch)
		}
		return handler(ctx, q)
	}
	return nil
}

// Handle implements query.Handler. The single result produced by the
// registered handler is added to the io-da result collector.
func (p *QueryProvider) Handle(ctx context.Context, qry query.Query, res *query.Result) error {
	name := TypeName(qry)

	p.mu.RLock()
	handler, exists := p.handlers[name]
	p.mu.RUnlock()

	if !exists {
		return &HandlerNotFoundError{MessageType: name}
	}

	result, err := handler(ctx, qry)
	if err != nil {
		return err
	}

	res.Add(result)
	res.Done()

	return nil
}

// IteratorProviderHandler produces a result iterator for a query.
type IteratorProviderHandler func(ctx context.Context, qry query.Query) (*Iterator[any], error)

// QueryIteratorProvider adapts streaming handlers to the io-da/query
// IteratorHandler contract. Each value pulled from the handler's Iterator is
// yielded to the io-da result collector.
type QueryIteratorProvider struct {
	handlers map[string]IteratorProviderHandler
	mu       sync.RWMutex
}

// NewQueryIteratorProvider creates an empty QueryIteratorProvider.
func NewQueryIteratorProvider() *QueryIteratorProvider {
	return &QueryIteratorProvider{
		handlers: make(map[string]IteratorProviderHandler),
	}
}

// RegisterIteratorHandler registers a typed streaming handler on the
// provider, with the same duplicate rules as RegisterProviderHandler.
func RegisterIteratorHandler[T query.Query](p *QueryIteratorProvider, handler func(ctx context.Context, qry T) (*Iterator[any], error)) error {
	name := TypeName(*new(T))
	if handler == nil {
		return fmt.Errorf("register iterator handler for %s: %w", name, ErrNilHandler)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.handlers[name]; exists {
		return &DuplicateHandlerError{MessageType: name}
	}
	p.handlers[name] = func(ctx context.Context, qry query.Query) (*Iterator[any], error) {
		q, ok := qry.(T)
		if !ok {
			return nil, fmt.Errorf("expected query type %s but got %s: %w", name, TypeName(qry), ErrHandlerTypeMismatch)
		}
		return handler(ctx, q)
	}
	return nil
}

// Handle implements query.IteratorHandler by draining the handler's iterator
// into the io-da result collector.
func (p *QueryIteratorProvider) Handle(ctx context.Context, qry query.Query, res *query.IteratorResult) error {
	name := TypeName(qry)

	p.mu.RLock()
	handler, exists := p.handlers[name]
	p.mu.RUnlock()

	if !exists {
		return &HandlerNotFoundError{MessageType: name}
	}

	iter, err := handler(ctx, qry)
	if err != nil {
		return err
	}

	for iter.Next(ctx) {
		res.Yield(iter.Value())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	res.Done()

	return nil
}
