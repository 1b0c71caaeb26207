package app

import (
	"context"
	"strings"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

// MaxConcurrentRequestsCap borne ce qu'un client peut demander.
const MaxConcurrentRequestsCap = 32

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsService) Put(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	def := domain.DefaultSettings()
	settings.Language = strings.TrimSpace(settings.Language)
	if settings.Language == "" {
		settings.Language = def.Language
	}
	settings.Region = strings.ToUpper(strings.TrimSpace(settings.Region))
	if settings.MaxConcurrentRequests <= 0 {
		settings.MaxConcurrentRequests = def.MaxConcurrentRequests
	}
	if settings.MaxConcurrentRequests > MaxConcurrentRequestsCap {
		settings.MaxConcurrentRequests = MaxConcurrentRequestsCap
	}
	return s.repo.Put(ctx, settings)
}
