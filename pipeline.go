package cqrs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// CommandInvoker is the type-erased form of a command handler, as stored by
// the CommandBus once registration has bound the concrete type.
type CommandInvoker func(ctx context.Context, cmd Command) (Result, error)

// QueryInvoker is the type-erased form of a query handler.
type QueryInvoker func(ctx context.Context, qry Query) (any, error)

// CommandDecorator wraps a type-erased command invocation. Decorators are the
// building blocks behind the named pipeline; type-aware cross-cutting
// concerns use CommandMiddleware instead.
type CommandDecorator func(next CommandInvoker) CommandInvoker

// QueryDecorator wraps a type-erased query invocation.
type QueryDecorator func(next QueryInvoker) QueryInvoker

// PipelineConfig carries the collaborators available to decorator factories.
// It is assembled from the bus options at registration time.
type PipelineConfig struct {
	// Logger receives the log lines of the logging decorator.
	Logger *slog.Logger

	// RetryStrategy produces a fresh backoff strategy for every dispatch
	// passing through the retry decorator.
	RetryStrategy func() backoff.BackOff
}

// DecoratorFactory builds both flavors of a named decorator. Both fields must
// be non-nil; a decorator is usable on commands and queries alike.
type DecoratorFactory struct {
	Command func(cfg *PipelineConfig) CommandDecorator
	Query   func(cfg *PipelineConfig) QueryDecorator
}

// Names of the built-in decorators every registry is seeded with.
const (
	DecoratorLogging  = "logging"
	DecoratorRecovery = "recovery"
	DecoratorRetry    = "retry"
)

// DecoratorRegistry maps decorator names to their factories. The table is
// closed: requesting a name that was never registered is a registration-time
// error, never a silent skip.
//
// A registry is seeded with the built-in decorators (logging, recovery,
// retry) and can be extended with RegisterDecorator before handlers are
// registered.
type DecoratorRegistry struct {
	mu        sync.RWMutex
	factories map[string]DecoratorFactory
}

// NewDecoratorRegistry creates a registry seeded with the built-in
// decorators.
func NewDecoratorRegistry() *DecoratorRegistry {
	r := &DecoratorRegistry{
		factories: make(map[string]DecoratorFactory),
	}
	r.factories[DecoratorLogging] = loggingFactory()
	r.factories[DecoratorRecovery] = recoveryFactory()
	r.factories[DecoratorRetry] = retryFactory()
	return r
}

// RegisterDecorator adds a named decorator to the registry.
//
// Returns an error if the name is already taken or the factory is incomplete.
func (r *DecoratorRegistry) RegisterDecorator(name string, factory DecoratorFactory) error {
	if factory.Command == nil || factory.Query == nil {
		return fmt.Errorf("register decorator %q: %w", name, ErrNilHandler)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register decorator %q: already registered", name)
	}
	r.factories[name] = factory
	return nil
}

func (r *DecoratorRegistry) commandDecorators(cfg *PipelineConfig, names []string) ([]CommandDecorator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decorators := make([]CommandDecorator, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, &UnknownDecoratorError{Name: name}
		}
		decorators = append(decorators, factory.Command(cfg))
	}
	return decorators, nil
}

func (r *DecoratorRegistry) queryDecorators(cfg *PipelineConfig, names []string) ([]QueryDecorator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decorators := make([]QueryDecorator, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, &UnknownDecoratorError{Name: name}
		}
		decorators = append(decorators, factory.Query(cfg))
	}
	return decorators, nil
}

// chainCommandDecorators applies decorators in reverse so the first name in
// the list ends up outermost, mirroring ChainCommandMiddleware.
func chainCommandDecorators(invoker CommandInvoker, decorators []CommandDecorator) CommandInvoker {
	wrapped := invoker
	for i := len(decorators) - 1; i >= 0; i-- {
		wrapped = decorators[i](wrapped)
	}
	return wrapped
}

func chainQueryDecorators(invoker QueryInvoker, decorators []QueryDecorator) QueryInvoker {
	wrapped := invoker
	for i := len(decorators) - 1; i >= 0; i-- {
		wrapped = decorators[i](wrapped)
	}
	return wrapped
}

// defaultRetryStrategy caps the built-in retry decorator at three attempts on
// top of exponential backoff. Override per bus with WithRetryStrategy.
func defaultRetryStrategy() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
}

func loggingFactory() DecoratorFactory {
	return DecoratorFactory{
		Command: func(cfg *PipelineConfig) CommandDecorator {
			logger := cfg.Logger
			return func(next CommandInvoker) CommandInvoker {
				return func(ctx context.Context, cmd Command) (Result, error) {
					l := logger.With(
						"message-type", MessageTypeFromContext(ctx),
						"dispatch-id", DispatchIDFromContext(ctx),
						"correlation-id", CorrelationIDFromContext(ctx),
					)

					l.DebugContext(ctx, "command dispatch started")
					start := time.Now()

					result, err := next(ctx, cmd)

					if err != nil {
						l.ErrorContext(ctx, "command dispatch failed", "error", err, "duration", time.Since(start))
					} else {
						l.DebugContext(ctx, "command dispatch completed", "duration", time.Since(start))
					}
					return result, err
				}
			}
		},
		Query: func(cfg *PipelineConfig) QueryDecorator {
			logger := cfg.Logger
			return func(next QueryInvoker) QueryInvoker {
				return func(ctx context.Context, qry Query) (any, error) {
					l := logger.With(
						"message-type", MessageTypeFromContext(ctx),
						"dispatch-id", DispatchIDFromContext(ctx),
						"correlation-id", CorrelationIDFromContext(ctx),
					)

					l.DebugContext(ctx, "query dispatch started")
					start := time.Now()

					result, err := next(ctx, qry)

					if err != nil {
						l.ErrorContext(ctx, "query dispatch failed", "error", err, "duration", time.Since(start))
					} else {
						l.DebugContext(ctx, "query dispatch completed", "duration", time.Since(start))
					}
					return result, err
				}
			}
		},
	}
}

func recoveryFactory() DecoratorFactory {
	return DecoratorFactory{
		Command: func(cfg *PipelineConfig) CommandDecorator {
			return func(next CommandInvoker) CommandInvoker {
				return func(ctx context.Context, cmd Command) (result Result, err error) {
					defer func() {
						if r := recover(); r != nil {
							result = Result{}
							err = fmt.Errorf("panic in handler for %s: %v", TypeName(cmd), r)
						}
					}()
					return next(ctx, cmd)
				}
			}
		},
		Query: func(cfg *PipelineConfig) QueryDecorator {
			return func(next QueryInvoker) QueryInvoker {
				return func(ctx context.Context, qry Query) (result any, err error) {
					defer func() {
						if r := recover(); r != nil {
							result = nil
							err = fmt.Errorf("panic in handler for %s: %v", TypeName(qry), r)
						}
					}()
					return next(ctx, qry)
				}
			}
		},
	}
}

func retryFactory() DecoratorFactory {
	return DecoratorFactory{
		Command: func(cfg *PipelineConfig) CommandDecorator {
			strategy := cfg.RetryStrategy
			return func(next CommandInvoker) CommandInvoker {
				return func(ctx context.Context, cmd Command) (Result, error) {
					return backoff.RetryWithData(func() (Result, error) {
						return next(ctx, cmd)
					}, backoff.WithContext(strategy(), ctx))
				}
			}
		},
		Query: func(cfg *PipelineConfig) QueryDecorator {
			strategy := cfg.RetryStrategy
			return func(next QueryInvoker) QueryInvoker {
				return func(ctx context.Context, qry Query) (any, error) {
					return backoff.RetryWithData(func() (any, error) {
						return next(ctx, qry)
					}, backoff.WithContext(strategy(), ctx))
				}
			}
		},
	}
}
