package cqrs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sukkergris/cqrs"
)

type providerQuery struct {
	Owner string
}

func (q providerQuery) ID() []byte {
	return []byte(q.Owner)
}

func TestQueryProvider_Register(t *testing.T) {
	p := cqrs.NewQueryProvider()

	err := cqrs.RegisterProviderHandler(p, func(ctx context.Context, qry providerQuery) (any, error) {
		return qry.Owner, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryProvider_DuplicateRejected(t *testing.T) {
	p := cqrs.NewQueryProvider()

	if err := cqrs.RegisterProviderHandler(p, func(ctx context.Context, qry providerQuery) (any, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	err := cqrs.RegisterProviderHandler(p, func(ctx context.Context, qry providerQuery) (any, error) {
		return nil, nil
	})
	if !errors.Is(err, cqrs.ErrDuplicateHandler) {
		t.Errorf("error = %v, want ErrDuplicateHandler", err)
	}
}

func TestQueryProvider_HandlerNotFound(t *testing.T) {
	p := cqrs.NewQueryProvider()

	err := p.Handle(context.Background(), providerQuery{Owner: "bob"}, nil)
	if !errors.Is(err, cqrs.ErrHandlerNotFound) {
		t.Errorf("error = %v, want ErrHandlerNotFound", err)
	}
}

func TestQueryIteratorProvider_Register(t *testing.T) {
	p := cqrs.NewQueryIteratorProvider()

	err := cqrs.RegisterIteratorHandler(p, func(ctx context.Context, qry providerQuery) (*cqrs.Iterator[any], error) {
		return cqrs.SliceIterator[any]("a", "b"), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryIteratorProvider_HandlerNotFound(t *testing.T) {
	p := cqrs.NewQueryIteratorProvider()

	err := p.Handle(context.Background(), providerQuery{Owner: "bob"}, nil)
	if !errors.Is(err, cqrs.ErrHandlerNotFound) {
		t.Errorf("error = %v, want ErrHandlerNotFound", err)
	}
}
