package cqrs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// CommandBus is an in-memory, type-safe command dispatcher.
//
// It maintains a mapping of command type names to their invokers. Handlers
// are registered up front with Register; after that the map is only read, so
// the bus is safe for concurrent dispatch. The bus itself is synchronous: a
// dispatch runs the handler on the calling goroutine, holds no queue and
// imposes no timeout.
//
// The CommandBus supports:
//   - Typed command registration using generics
//   - Exactly one handler per command type, enforced at registration
//   - Per-registration middleware and named pipeline decorators
//   - Panic recovery in handlers so a misbehaving handler cannot crash the caller
type CommandBus struct {
	handlers map[string]CommandInvoker
	cfg      busConfig
	mu       sync.RWMutex
}

// busConfig holds the configuration shared by both bus kinds.
type busConfig struct {
	logger     *slog.Logger
	retry      func() backoff.BackOff
	decorators *DecoratorRegistry
}

// BusOption configures a CommandBus, a QueryBus or a Mediator.
type BusOption func(*busConfig)

// WithLogger sets the logger handed to the logging decorator.
// It defaults to slog.Default().
func WithLogger(logger *slog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithRetryStrategy sets the factory producing the backoff strategy used by
// the retry decorator. The factory is invoked once per dispatch so strategies
// never share state between dispatches.
func WithRetryStrategy(factory func() backoff.BackOff) BusOption {
	return func(c *busConfig) {
		c.retry = factory
	}
}

// WithDecoratorRegistry replaces the decorator registry consulted when
// handlers request named decorators. It defaults to a registry seeded with
// the built-ins.
func WithDecoratorRegistry(registry *DecoratorRegistry) BusOption {
	return func(c *busConfig) {
		c.decorators = registry
	}
}

func newBusConfig(opts []BusOption) busConfig {
	cfg := busConfig{
		logger: slog.Default(),
		retry:  defaultRetryStrategy,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.decorators == nil {
		cfg.decorators = NewDecoratorRegistry()
	}
	return cfg
}

func (c *busConfig) pipeline() *PipelineConfig {
	return &PipelineConfig{
		Logger:        c.logger,
		RetryStrategy: c.retry,
	}
}

// NewCommandBus creates a new CommandBus.
//
// Example:
//
//	bus := NewCommandBus(WithLogger(logger))
func NewCommandBus(opts ...BusOption) *CommandBus {
	return &CommandBus{
		handlers: make(map[string]CommandInvoker),
		cfg:      newBusConfig(opts),
	}
}

// registerConfig collects the per-registration pipeline of a command handler.
type registerConfig[C Command] struct {
	middleware []CommandMiddleware[C]
	decorators []string
}

// RegisterOption customizes a single command handler registration.
type RegisterOption[C Command] func(*registerConfig[C])

// WithMiddleware attaches typed middleware to the handler being registered.
// Middleware runs in the listed order, outermost first, inside any named
// decorators.
func WithMiddleware[C Command](middleware ...CommandMiddleware[C]) RegisterOption[C] {
	return func(c *registerConfig[C]) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithDecorators requests named decorators from the bus registry for the
// handler being registered. Names are resolved at registration time; an
// unrecognized name makes Register fail with an UnknownDecoratorError.
func WithDecorators[C Command](names ...string) RegisterOption[C] {
	return func(c *registerConfig[C]) {
		c.decorators = append(c.decorators, names...)
	}
}

// Register adds a typed command handler to the bus.
//
// Parameters:
//   - bus: pointer to the CommandBus
//   - handler: a generic CommandHandler[C] function for a specific command type C
//   - opts: optional per-registration middleware and decorators
//
// The command type name is derived automatically from C, so no manual
// registration strings are involved. The pipeline is assembled once, here:
// named decorators outermost, then typed middleware, then the concrete
// handler innermost.
//
// Returns an error if the handler is nil, a handler for C already exists, or
// a requested decorator name is unknown.
//
// Example:
//
//	err := Register(bus, handleCreateOrder, WithDecorators[CreateOrder](DecoratorLogging))
func Register[C Command](bus *CommandBus, handler CommandHandler[C], opts ...RegisterOption[C]) error {
	name := TypeName(*new(C))
	if handler == nil {
		return fmt.Errorf("register command handler for %s: %w", name, ErrNilHandler)
	}

	cfg := &registerConfig[C]{}
	for _, opt := range opts {
		opt(cfg)
	}

	chain := ChainCommandMiddleware(handler, cfg.middleware...)
	invoker := func(ctx context.Context, cmd Command) (Result, error) {
		c, ok := cmd.(C)
		if !ok {
			return Result{}, fmt.Errorf("expected command type %s but got %s", name, TypeName(cmd))
		}
		return chain(ctx, c)
	}

	decorators, err := bus.cfg.decorators.commandDecorators(bus.cfg.pipeline(), cfg.decorators)
	if err != nil {
		return fmt.Errorf("register command handler for %s: %w", name, err)
	}
	invoker = chainCommandDecorators(invoker, decorators)

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if _, exists := bus.handlers[name]; exists {
		return &DuplicateHandlerError{MessageType: name}
	}
	bus.handlers[name] = invoker
	return nil
}

// MustRegister is Register but panics on error. Use it in wiring code where a
// registration failure is a programming mistake.
func MustRegister[C Command](bus *CommandBus, handler CommandHandler[C], opts ...RegisterOption[C]) {
	if err := Register(bus, handler, opts...); err != nil {
		panic(err)
	}
}

// Dispatch routes the command to its registered handler and returns the
// handler's result unchanged. It is safe to call concurrently.
//
// Parameters:
//   - ctx: the context for cancellation or timeout; the bus itself never
//     blocks on it, but handlers and decorators receive it
//   - cmd: the command to dispatch
//
// Returns:
//   - Result: the handler's result
//   - error: non-nil if no handler is registered for the command's runtime
//     type (matches ErrHandlerNotFound), if the handler panicked, or if the
//     handler itself failed. Handler errors pass through unchanged.
func (b *CommandBus) Dispatch(ctx context.Context, cmd Command) (result Result, err error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}

	name := TypeName(cmd)

	b.mu.RLock()
	invoker, exists := b.handlers[name]
	b.mu.RUnlock()

	if !exists {
		return Result{}, &HandlerNotFoundError{MessageType: name}
	}

	ctx = withDispatch(ctx, uuid.New(), name)

	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = fmt.Errorf("panic in handler for %s: %v", name, r)
		}
	}()

	return invoker(ctx, cmd)
}
