package filestore

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s, err := New(fs, "/data")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Get(ctx, "zetflix-watchlist"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get(missing): expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, "zetflix-watchlist", []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ok, err := afero.Exists(fs, "/data/zetflix-watchlist.json")
	if err != nil || !ok {
		t.Fatalf("expected blob file on disk, exists=%v err=%v", ok, err)
	}
	got, err := s.Get(ctx, "zetflix-watchlist")
	if err != nil || string(got) != "[]" {
		t.Fatalf("Get: got %q, %v", got, err)
	}

	entries, err := afero.ReadDir(fs, "/data")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp file, got %d entries", len(entries))
	}

	if err := s.Delete(ctx, "zetflix-watchlist"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "zetflix-watchlist"); err != nil {
		t.Fatalf("Delete(again): %v", err)
	}
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, key := range []string{"", "..", "../etc/passwd", "a/b", "with space"} {
		if err := s.Put(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Put(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}
