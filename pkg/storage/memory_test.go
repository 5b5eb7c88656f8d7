package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundtrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Save(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	value, err := store.Load(ctx, "k")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(value) != `{"a":1}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	original := []byte("original")
	if err := store.Save(ctx, "k", original); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	original[0] = 'X'

	value, err := store.Load(ctx, "k")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(value) != "original" {
		t.Fatalf("stored value aliased caller slice: %q", value)
	}
	value[0] = 'Y'

	again, _ := store.Load(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("loaded value aliased internal slice: %q", again)
	}
}
