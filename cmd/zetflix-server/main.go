package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/Guilhem-Bonnet/zetflix/internal/adapters/filestore"
	"github.com/Guilhem-Bonnet/zetflix/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/zetflix/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/zetflix/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/zetflix/internal/adapters/tmdb"
	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/buildinfo"
	"github.com/Guilhem-Bonnet/zetflix/internal/config"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/logging"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

func main() {
	cfg := config.Default()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Chemin SQLite (ex: zetflix.db)")
	flag.StringVar(&cfg.Storage, "storage", cfg.Storage, "Stockage de la watchlist: sqlite ou file")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Répertoire du stockage file")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Niveau de log (debug, info, warn, error)")
	flag.Parse()

	logger, logCloser, err := logging.New("zetflix-server", cfg.Log, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init logging")
	}
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}
	log.Logger = logger

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	logger.Info().Interface("build", buildinfo.Current()).Str("db", cfg.DBPath).Str("storage", cfg.Storage).Msg("starting")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open db")
	}
	defer func() { _ = db.Close() }()

	var blobs ports.BlobStore
	switch cfg.Storage {
	case config.StorageFile:
		fs, err := filestore.New(afero.NewOsFs(), cfg.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open data dir")
		}
		blobs = fs
	default:
		blobs = sqlite.NewBlobStore(db.SQL)
	}

	bus := memorybus.New()
	defer bus.Close()

	settingsSvc := app.NewSettingsService(sqlite.NewSettingsRepository(db.SQL))

	// Limiteur partagé par toutes les requêtes TMDB, ajusté à chaud via settings.
	initial := domain.DefaultSettings().MaxConcurrentRequests
	if s, err := settingsSvc.Get(ctx); err == nil && s.MaxConcurrentRequests > 0 {
		initial = s.MaxConcurrentRequests
	}
	requestLimiter := app.NewDynamicLimiter(initial)

	client := tmdb.New(tmdb.Options{
		Token:             cfg.TMDBToken,
		BaseURL:           cfg.TMDBBaseURL,
		ImageBaseURL:      cfg.TMDBImageBaseURL,
		Settings:          settingsSvc.Get,
		Limiter:           requestLimiter,
		RequestsPerSecond: cfg.TMDBRequestsPerSecond,
		Logger:            component(logger, "tmdb"),
	})
	if !client.Configured() {
		logger.Warn().Msg("TMDB_API_TOKEN missing or placeholder: catalog routes will answer 503")
	}

	watchlist := app.NewWatchlistStore(component(logger, "watchlist"), blobs, app.WatchlistOptions{
		Key: cfg.WatchlistKey,
		Bus: bus,
	})
	watchlist.Load(ctx)
	logger.Info().Int("entries", watchlist.Len()).Msg("watchlist ready")

	catalogSvc := app.NewCatalogService(component(logger, "catalog"), client, watchlist)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpapi.NewServer(logger, httpapi.Deps{
		Catalog:        catalogSvc,
		Watchlist:      watchlist,
		Settings:       settingsSvc,
		Images:         client.Images(),
		Bus:            bus,
		RequestLimiter: requestLimiter,
		OnSettingsUpdated: func(updated domain.Settings) {
			logger.Info().Str("language", updated.Language).Int("max_concurrent_requests", updated.MaxConcurrentRequests).Msg("settings updated")
		},
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Ferme les flux SSE pour que Shutdown n'attende pas leur timeout.
	httpServer.RegisterOnShutdown(bus.Close)

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}

func component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
