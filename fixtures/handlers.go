package fixtures

import (
	"context"
	"sync"

	"github.com/sukkergris/cqrs"
)

// CommandHandlerSpy is a configurable command handler for testing.
// It counts invocations and allows injecting custom behavior.
type CommandHandlerSpy[C cqrs.Command] struct {
	mu sync.Mutex

	// Function override; when nil the spy returns Result and Err.
	HandleFn func(ctx context.Context, cmd C) (cqrs.Result, error)

	// Canned response.
	Result cqrs.Result
	Err    error

	// Call tracking
	Calls    int
	Received []C
}

// NewCommandHandlerSpy creates a spy returning a successful result.
func NewCommandHandlerSpy[C cqrs.Command]() *CommandHandlerSpy[C] {
	return &CommandHandlerSpy[C]{
		Result: cqrs.Result{Successful: true},
	}
}

// FailWith configures the spy to return err.
func (s *CommandHandlerSpy[C]) FailWith(err error) *CommandHandlerSpy[C] {
	s.Err = err
	s.Result = cqrs.Result{}
	return s
}

// Handler returns the spy as a CommandHandler.
func (s *CommandHandlerSpy[C]) Handler() cqrs.CommandHandler[C] {
	return func(ctx context.Context, cmd C) (cqrs.Result, error) {
		s.mu.Lock()
		s.Calls++
		s.Received = append(s.Received, cmd)
		s.mu.Unlock()

		if s.HandleFn != nil {
			return s.HandleFn(ctx, cmd)
		}
		return s.Result, s.Err
	}
}

// CallCount returns the number of invocations so far.
func (s *CommandHandlerSpy[C]) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// QueryHandlerSpy is a configurable query handler for testing.
type QueryHandlerSpy[T cqrs.Query, R any] struct {
	mu sync.Mutex

	HandleFn func(ctx context.Context, qry T) (R, error)

	Result R
	Err    error

	Calls    int
	Received []T
}

// NewQueryHandlerSpy creates a spy returning result.
func NewQueryHandlerSpy[T cqrs.Query, R any](result R) *QueryHandlerSpy[T, R] {
	return &QueryHandlerSpy[T, R]{
		Result: result,
	}
}

// HandleQuery implements cqrs.QueryHandler.
func (s *QueryHandlerSpy[T, R]) HandleQuery(ctx context.Context, qry T) (R, error) {
	s.mu.Lock()
	s.Calls++
	s.Received = append(s.Received, qry)
	s.mu.Unlock()

	if s.HandleFn != nil {
		return s.HandleFn(ctx, qry)
	}
	return s.Result, s.Err
}

// CallCount returns the number of invocations so far.
func (s *QueryHandlerSpy[T, R]) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}
