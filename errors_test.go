package cqrs

import (
	"errors"
	"fmt"
	"testing"
)

func TestHandlerNotFoundError(t *testing.T) {
	err := &HandlerNotFoundError{MessageType: "orders.CreateOrder"}

	if !errors.Is(err, ErrHandlerNotFound) {
		t.Error("expected errors.Is(err, ErrHandlerNotFound)")
	}
	if got := err.Error(); got != "no handler registered for message type orders.CreateOrder" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDuplicateHandlerError(t *testing.T) {
	err := &DuplicateHandlerError{MessageType: "orders.CreateOrder"}

	if !errors.Is(err, ErrDuplicateHandler) {
		t.Error("expected errors.Is(err, ErrDuplicateHandler)")
	}
}

func TestUnknownDecoratorError(t *testing.T) {
	err := &UnknownDecoratorError{Name: "transaction"}

	if !errors.Is(err, ErrUnknownDecorator) {
		t.Error("expected errors.Is(err, ErrUnknownDecorator)")
	}
	if got := err.Error(); got != `unknown decorator "transaction" requested` {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrappedSentinelsSurviveFmtErrorf(t *testing.T) {
	inner := &UnknownDecoratorError{Name: "caching"}
	wrapped := fmt.Errorf("register command handler for orders.CreateOrder: %w", inner)

	if !errors.Is(wrapped, ErrUnknownDecorator) {
		t.Error("expected sentinel to survive wrapping")
	}
	var unknown *UnknownDecoratorError
	if !errors.As(wrapped, &unknown) || unknown.Name != "caching" {
		t.Errorf("errors.As failed on wrapped error: %v", wrapped)
	}
}
