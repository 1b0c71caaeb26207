package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBlobStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(openTestDB(t).SQL)

	if _, err := store.Get(ctx, "zetflix-watchlist"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get(missing): expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "zetflix-watchlist", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "zetflix-watchlist", []byte(`[]`)); err != nil {
		t.Fatalf("Put(overwrite): %v", err)
	}
	got, err := store.Get(ctx, "zetflix-watchlist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("Get: want %q, got %q", "[]", got)
	}

	if err := store.Delete(ctx, "zetflix-watchlist"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "zetflix-watchlist"); err != nil {
		t.Fatalf("Delete(again): %v", err)
	}
	if _, err := store.Get(ctx, "zetflix-watchlist"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get(after delete): expected ErrNotFound, got %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
