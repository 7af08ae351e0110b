package cqrs

import "fmt"

// BusError is used to create sentinel errors originating from the buses.
type BusError string

// Error returns the string message of the error.
func (e BusError) Error() string { return string(e) }

const (
	// ErrHandlerNotFound is matched (errors.Is) by dispatch failures caused
	// by a message type without a registered handler.
	ErrHandlerNotFound = BusError("cqrs: no handler registered for the message type")
	// ErrDuplicateHandler is matched by registration failures caused by a
	// second handler for an already covered message type.
	ErrDuplicateHandler = BusError("cqrs: a handler is already registered for the message type")
	// ErrUnknownDecorator is matched by registration failures caused by a
	// decorator name the registry does not know.
	ErrUnknownDecorator = BusError("cqrs: unknown decorator requested")
	// ErrHandlerTypeMismatch is returned when a registered handler does not
	// match the requested query/result type pair.
	ErrHandlerTypeMismatch = BusError("cqrs: handler type mismatch")
	// ErrNilCommand is returned when dispatching a nil command.
	ErrNilCommand = BusError("cqrs: nil command")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = BusError("cqrs: nil handler")
)

// HandlerNotFoundError is the resolution failure returned when a dispatched
// message has no registered handler. It names the offending message type.
type HandlerNotFoundError struct {
	MessageType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for message type %s", e.MessageType)
}

func (e *HandlerNotFoundError) Unwrap() error {
	return ErrHandlerNotFound
}

// DuplicateHandlerError is the configuration error returned when a second
// handler is registered for a message type that is already covered.
type DuplicateHandlerError struct {
	MessageType string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("handler already registered for message type %s", e.MessageType)
}

func (e *DuplicateHandlerError) Unwrap() error {
	return ErrDuplicateHandler
}

// UnknownDecoratorError is the configuration error returned when a pipeline
// requests a decorator name the registry does not recognize.
type UnknownDecoratorError struct {
	Name string
}

func (e *UnknownDecoratorError) Error() string {
	return fmt.Sprintf("unknown decorator %q requested", e.Name)
}

func (e *UnknownDecoratorError) Unwrap() error {
	return ErrUnknownDecorator
}
