package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

// ImageURLer construit les URLs d'images TMDB.
type ImageURLer interface {
	URL(class domain.ImageClass, path, size string) (string, error)
}

type Deps struct {
	Catalog   *app.CatalogService
	Watchlist *app.WatchlistStore
	Settings  *app.SettingsService
	Images    ImageURLer
	Bus       ports.EventBus
	// RequestLimiter est optionnel et suit maxConcurrentRequests à chaud.
	RequestLimiter *app.DynamicLimiter
	// OnSettingsUpdated est optionnel.
	OnSettingsUpdated func(domain.Settings)
}

type Server struct {
	logger zerolog.Logger
	deps   Deps
}

func NewServer(logger zerolog.Logger, deps Deps) *Server {
	return &Server{logger: logger, deps: deps}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Route("/api/v1", func(r chi.Router) {
		// Le flux SSE n'a pas de timeout.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))
			s.routes(r)
		})
	})

	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/openapi.json", s.handleOpenAPI)

	if s.deps.Catalog != nil {
		NewCatalogHandler(s.deps.Catalog).Routes(r)
	}
	if s.deps.Images != nil {
		NewImagesHandler(s.deps.Images).Routes(r)
	}
	if s.deps.Watchlist != nil {
		NewWatchlistHandler(s.deps.Watchlist, s.deps.Catalog).Routes(r)
	}
	if s.deps.Settings != nil {
		NewSettingsHandler(s.deps.Settings, s.settingsUpdated).Routes(r)
	}
}

func (s *Server) settingsUpdated(updated domain.Settings) {
	if s.deps.RequestLimiter != nil && updated.MaxConcurrentRequests > 0 {
		s.deps.RequestLimiter.SetLimit(updated.MaxConcurrentRequests)
	}
	if s.deps.Bus != nil {
		publishJSON(s.deps.Bus, "settings.updated", updated)
	}
	if s.deps.OnSettingsUpdated != nil {
		s.deps.OnSettingsUpdated(updated)
	}
}
