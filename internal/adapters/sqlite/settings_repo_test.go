package sqlite

import (
	"context"
	"testing"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
)

func TestSettingsRepository_DefaultsAndPersist(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t).SQL)

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get(default): %v", err)
	}
	if got != domain.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	want := domain.Settings{Language: "fr-FR", Region: "FR", IncludeAdult: true, MaxConcurrentRequests: 3}
	updated, err := repo.Put(ctx, want)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if updated != want {
		t.Fatalf("Put: want %+v, got %+v", want, updated)
	}

	got2, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get(after Put): %v", err)
	}
	if got2 != want {
		t.Fatalf("Get(after Put): want %+v, got %+v", want, got2)
	}
}

func TestSettingsRepository_CorruptRowFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if _, err := db.SQL.ExecContext(ctx, `INSERT INTO settings(key, value_json, updated_at) VALUES('default', 'not json', '')`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := NewSettingsRepository(db.SQL).Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != domain.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}
