package cqrs

import "context"

// Mediator bundles a CommandBus and a QueryBus behind a single value, so
// callers can route any message without knowing the handler's identity.
//
// Example Usage:
//
//	m := NewMediator()
//	_ = Register(m.Commands(), handleCreateOrder)
//	_ = RegisterQueryHandler(m.Queries(), getOrderHandler)
//
//	result, err := m.Dispatch(ctx, CreateOrder{ID: "42"})
//	order, err := Ask[GetOrder, *Order](ctx, m, GetOrder{ID: "42"})
type Mediator struct {
	commands *CommandBus
	queries  *QueryBus
}

// NewMediator creates a Mediator with a fresh command and query bus sharing
// the supplied options.
func NewMediator(opts ...BusOption) *Mediator {
	return &Mediator{
		commands: NewCommandBus(opts...),
		queries:  NewQueryBus(opts...),
	}
}

// Commands returns the underlying CommandBus for handler registration.
func (m *Mediator) Commands() *CommandBus {
	return m.commands
}

// Queries returns the underlying QueryBus for handler registration.
func (m *Mediator) Queries() *QueryBus {
	return m.queries
}

// Dispatch routes a command to its registered handler. See
// CommandBus.Dispatch for the error contract.
func (m *Mediator) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	return m.commands.Dispatch(ctx, cmd)
}

// Ask executes a query through the mediator and returns its typed result.
//
// Type Parameters:
//   - T: The query type implementing Query.
//   - R: The expected result type; it must match the type the handler was
//     registered with.
func Ask[T Query, R any](ctx context.Context, m *Mediator, qry T) (R, error) {
	return NewQueryGateway[T, R](m.queries).HandleQuery(ctx, qry)
}
