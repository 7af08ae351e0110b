package cqrs

import "context"

// CommandHandler defines a function type for handling commands of a specific type.
//
// C represents the concrete command type implementing the Command interface.
//
// A CommandHandler is responsible for implementing the business logic
// associated with a command. This typically includes validation, orchestration
// and producing side effects. Handlers of this type are registered with a
// CommandBus, which ensures that commands are dispatched to the correct
// handler based on their type.
//
// Parameters:
//   - ctx: The context for controlling cancellation, deadlines, and carrying request-scoped values.
//   - command: The command of type C, representing the intent to perform a domain action.
//
// Returns:
//   - Result: Represents the result of handling the command, including the success marker
//     and an optional value produced by the handler.
//   - error: Non-nil if the command handling failed, e.g., due to validation errors
//     or business rule violations.
//
// Notes:
//   - Implementations should treat the command as immutable.
//   - Handlers should not panic; all errors should be returned via the error return value.
//
// Example Usage:
//
//	func HandleReserveSeat(ctx context.Context, cmd ReserveSeat) (cqrs.Result, error) {
//	    if seatAlreadyReserved(cmd.SeatNumber) {
//	        return cqrs.Result{}, fmt.Errorf("seat already reserved")
//	    }
//	    return cqrs.Result{Successful: true}, nil
//	}
type CommandHandler[C Command] func(ctx context.Context, command C) (Result, error)

// CommandMiddleware decorates a CommandHandler with cross-cutting behavior
// such as logging, metrics or tracing. Each middleware receives the next
// link in the chain and returns the wrapped handler.
type CommandMiddleware[C Command] func(next CommandHandler[C]) CommandHandler[C]

// ChainCommandMiddleware composes a handler with an ordered list of
// middleware. The list is applied in reverse so the concrete handler is
// wrapped first and the first middleware in the list ends up outermost.
// With no middleware the handler is returned unchanged.
func ChainCommandMiddleware[C Command](handler CommandHandler[C], middleware ...CommandMiddleware[C]) CommandHandler[C] {
	wrapped := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		wrapped = middleware[i](wrapped)
	}
	return wrapped
}
