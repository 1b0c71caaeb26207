package app

import (
	"context"
	"testing"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
)

type memSettings struct {
	s domain.Settings
}

func (m *memSettings) Get(ctx context.Context) (domain.Settings, error) { return m.s, nil }

func (m *memSettings) Put(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	m.s = s
	return s, nil
}

func TestSettingsService_PutNormalizes(t *testing.T) {
	svc := NewSettingsService(&memSettings{s: domain.DefaultSettings()})

	got, err := svc.Put(context.Background(), domain.Settings{Language: "  ", Region: " fr ", MaxConcurrentRequests: 500})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got.Language != "en-US" || got.Region != "FR" || got.MaxConcurrentRequests != MaxConcurrentRequestsCap {
		t.Fatalf("unexpected normalized settings: %+v", got)
	}

	got, _ = svc.Put(context.Background(), domain.Settings{Language: "de-DE"})
	if got.MaxConcurrentRequests != domain.DefaultSettings().MaxConcurrentRequests {
		t.Fatalf("zero limit must fall back to default, got %d", got.MaxConcurrentRequests)
	}
}
