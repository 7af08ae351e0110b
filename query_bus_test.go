package cqrs

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
)

type ListTasksQuery struct {
	Owner string
}

type TaskListResult struct {
	Tasks []string
}

func TestQueryBus_RegisterAndLookup(t *testing.T) {
	bus := NewQueryBus()
	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "found"}, nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.handlers) != 1 {
		t.Errorf("len(bus.handlers) = %d, want 1", len(bus.handlers))
	}
}

func TestQueryBus_MultipleHandlers(t *testing.T) {
	bus := NewQueryBus()

	if err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "single"}, nil
	})); err != nil {
		t.Fatalf("register GetTaskQuery: %v", err)
	}

	if err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q ListTasksQuery) (*TaskListResult, error) {
		return &TaskListResult{Tasks: []string{"a", "b"}}, nil
	})); err != nil {
		t.Fatalf("register ListTasksQuery: %v", err)
	}

	if len(bus.handlers) != 2 {
		t.Errorf("len(bus.handlers) = %d, want 2", len(bus.handlers))
	}
}

func TestQueryBus_DuplicateHandlerRejected(t *testing.T) {
	bus := NewQueryBus()

	if err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "first"}, nil
	})); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "second"}, nil
	}))

	if !errors.Is(err, ErrDuplicateHandler) {
		t.Errorf("error = %v, want ErrDuplicateHandler", err)
	}
}

func TestQueryBus_SameQueryDifferentResults(t *testing.T) {
	bus := NewQueryBus()

	if err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "scalar"}, nil
	})); err != nil {
		t.Fatalf("register scalar: %v", err)
	}

	// Same query type paired with a different result type is a distinct
	// registration key.
	if err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskListResult, error) {
		return &TaskListResult{Tasks: []string{"x"}}, nil
	})); err != nil {
		t.Fatalf("register list: %v", err)
	}

	if len(bus.handlers) != 2 {
		t.Errorf("len(bus.handlers) = %d, want 2", len(bus.handlers))
	}
}

func TestRegisterQueryHandler_NilHandler(t *testing.T) {
	bus := NewQueryBus()

	err := RegisterQueryHandler[GetTaskQuery, *TaskResult](bus, nil)
	if !errors.Is(err, ErrNilHandler) {
		t.Errorf("error = %v, want ErrNilHandler", err)
	}
}

func TestRegisterQueryHandler_UnknownDecorator(t *testing.T) {
	bus := NewQueryBus()

	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		return &TaskResult{Title: "x"}, nil
	}), WithQueryDecorators[GetTaskQuery, *TaskResult]("caching"))

	if !errors.Is(err, ErrUnknownDecorator) {
		t.Errorf("error = %v, want ErrUnknownDecorator", err)
	}
	if len(bus.handlers) != 0 {
		t.Errorf("failed registration must not store a handler")
	}
}

func TestQueryBus_DecoratedHandler(t *testing.T) {
	bus := NewQueryBus(WithRetryStrategy(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}))

	calls := 0
	err := RegisterQueryHandler(bus, NewQueryHandlerFunc(func(ctx context.Context, q GetTaskQuery) (*TaskResult, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("transient")
		}
		return &TaskResult{Title: "recovered"}, nil
	}), WithQueryDecorators[GetTaskQuery, *TaskResult](DecoratorRetry))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	gateway := NewQueryGateway[GetTaskQuery, *TaskResult](bus)
	result, err := gateway.HandleQuery(context.Background(), GetTaskQuery{TaskID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "recovered" {
		t.Errorf("Title = %q, want %q", result.Title, "recovered")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
