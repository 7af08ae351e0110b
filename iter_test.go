package cqrs

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSliceIterator_All(t *testing.T) {
	it := SliceIterator("a", "b", "c")

	got, err := it.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All = %v, want %v", got, want)
	}
}

func TestSliceIterator_Empty(t *testing.T) {
	it := SliceIterator[int]()

	if it.Next(context.Background()) {
		t.Error("Next on empty iterator = true, want false")
	}
	if err := it.Err(); err != nil {
		t.Errorf("Err = %v, want nil", err)
	}
}

func TestIterator_ManualIteration(t *testing.T) {
	it := SliceIterator(1, 2)
	ctx := context.Background()

	if !it.Next(ctx) {
		t.Fatal("expected first Next to succeed")
	}
	if it.Value() != 1 {
		t.Errorf("Value = %d, want 1", it.Value())
	}
	if !it.Next(ctx) {
		t.Fatal("expected second Next to succeed")
	}
	if it.Value() != 2 {
		t.Errorf("Value = %d, want 2", it.Value())
	}
	if it.Next(ctx) {
		t.Error("expected third Next to fail")
	}
}

func TestIterator_PropagatesError(t *testing.T) {
	boom := errors.New("source failed")
	calls := 0
	it := NewIterator(func(ctx context.Context) (string, bool, error) {
		calls++
		if calls == 2 {
			return "", false, boom
		}
		return "row", true, nil
	})

	got, err := it.All(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if len(got) != 1 {
		t.Errorf("len(results) = %d, want 1", len(got))
	}

	// Next stays false once an error is latched.
	if it.Next(context.Background()) {
		t.Error("Next after error = true, want false")
	}
}
