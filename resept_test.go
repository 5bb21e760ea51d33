package resept

import (
	"context"
	"errors"
	"testing"
)

func TestOpenAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, t.TempDir()+"/api.db")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	note := &Note{ID: "n1", Text: "hello", CreatedAt: 1, UpdatedAt: 1}
	if err := store.PutNote(ctx, note); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}
	got, err := store.GetNote(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("expected hello, got %q", got.Text)
	}

	if _, err := store.GetNote(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
