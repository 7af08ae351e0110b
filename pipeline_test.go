package cqrs

import (
	"context"
	"errors"
	"testing"
)

func TestDecoratorRegistry_Builtins(t *testing.T) {
	registry := NewDecoratorRegistry()
	cfg := newBusConfig(nil)

	for _, name := range []string{DecoratorLogging, DecoratorRecovery, DecoratorRetry} {
		if _, err := registry.commandDecorators(cfg.pipeline(), []string{name}); err != nil {
			t.Errorf("command decorator %q: %v", name, err)
		}
		if _, err := registry.queryDecorators(cfg.pipeline(), []string{name}); err != nil {
			t.Errorf("query decorator %q: %v", name, err)
		}
	}
}

func TestDecoratorRegistry_UnknownName(t *testing.T) {
	registry := NewDecoratorRegistry()
	cfg := newBusConfig(nil)

	_, err := registry.commandDecorators(cfg.pipeline(), []string{DecoratorLogging, "transaction"})
	if err == nil {
		t.Fatal("expected error for unknown decorator")
	}
	var unknown *UnknownDecoratorError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T, want *UnknownDecoratorError", err)
	}
	if unknown.Name != "transaction" {
		t.Errorf("Name = %q, want %q", unknown.Name, "transaction")
	}
}

func TestDecoratorRegistry_RegisterCustom(t *testing.T) {
	registry := NewDecoratorRegistry()

	noop := DecoratorFactory{
		Command: func(cfg *PipelineConfig) CommandDecorator {
			return func(next CommandInvoker) CommandInvoker { return next }
		},
		Query: func(cfg *PipelineConfig) QueryDecorator {
			return func(next QueryInvoker) QueryInvoker { return next }
		},
	}

	if err := registry.RegisterDecorator("noop", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.RegisterDecorator("noop", noop); err == nil {
		t.Error("expected error on duplicate decorator name")
	}
	if err := registry.RegisterDecorator("partial", DecoratorFactory{Command: noop.Command}); err == nil {
		t.Error("expected error on incomplete factory")
	}

	cfg := newBusConfig(nil)
	decorators, err := registry.commandDecorators(cfg.pipeline(), []string{"noop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decorators) != 1 {
		t.Errorf("len(decorators) = %d, want 1", len(decorators))
	}
}

func TestChainCommandDecorators_Order(t *testing.T) {
	var order []string
	record := func(label string) CommandDecorator {
		return func(next CommandInvoker) CommandInvoker {
			return func(ctx context.Context, cmd Command) (Result, error) {
				order = append(order, label)
				return next(ctx, cmd)
			}
		}
	}

	invoker := func(ctx context.Context, cmd Command) (Result, error) {
		order = append(order, "handler")
		return Result{Successful: true}, nil
	}

	chained := chainCommandDecorators(invoker, []CommandDecorator{record("outer"), record("inner")})
	if _, err := chained(context.Background(), testCmd{ID: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("chain depth = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestChainCommandDecorators_Empty(t *testing.T) {
	calls := 0
	invoker := func(ctx context.Context, cmd Command) (Result, error) {
		calls++
		return Result{Successful: true}, nil
	}

	chained := chainCommandDecorators(invoker, nil)
	if _, err := chained(context.Background(), testCmd{ID: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRecoveryDecorator_CatchesPanic(t *testing.T) {
	registry := NewDecoratorRegistry()
	cfg := newBusConfig(nil)

	decorators, err := registry.commandDecorators(cfg.pipeline(), []string{DecoratorRecovery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invoker := func(ctx context.Context, cmd Command) (Result, error) {
		panic("boom")
	}

	res, err := chainCommandDecorators(invoker, decorators)(context.Background(), testCmd{ID: "x"})
	if err == nil {
		t.Fatal("expected recovered panic error")
	}
	if res.Successful {
		t.Error("expected unsuccessful result after panic")
	}
}

func TestRecoveryDecorator_QueryCatchesPanic(t *testing.T) {
	registry := NewDecoratorRegistry()
	cfg := newBusConfig(nil)

	decorators, err := registry.queryDecorators(cfg.pipeline(), []string{DecoratorRecovery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invoker := func(ctx context.Context, qry Query) (any, error) {
		panic("boom")
	}

	result, err := chainQueryDecorators(invoker, decorators)(context.Background(), GetTaskQuery{TaskID: "1"})
	if err == nil {
		t.Fatal("expected recovered panic error")
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
}
