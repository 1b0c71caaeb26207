package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

type Config struct {
	Addr   string
	DBPath string

	// Storage choisit le BlobStore de la watchlist: sqlite ou file.
	Storage string
	DataDir string

	TMDBToken             string
	TMDBBaseURL           string
	TMDBImageBaseURL      string
	TMDBRequestsPerSecond float64

	WatchlistKey string

	Log Log
}

type Log struct {
	Level  string
	File   string
	Pretty bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func Default() Config {
	return Config{
		Addr:    envOr("ZETFLIX_ADDR", "127.0.0.1:8080"),
		DBPath:  envOr("ZETFLIX_DB_PATH", "zetflix.db"),
		Storage: strings.ToLower(envOr("ZETFLIX_STORAGE", StorageSQLite)),
		DataDir: envOr("ZETFLIX_DATA_DIR", "data"),

		// VITE_TMDB_API_KEY reste accepté pour les .env existants.
		TMDBToken:             envOr("TMDB_API_TOKEN", os.Getenv("VITE_TMDB_API_KEY")),
		TMDBBaseURL:           os.Getenv("ZETFLIX_TMDB_BASE_URL"),
		TMDBImageBaseURL:      os.Getenv("ZETFLIX_TMDB_IMAGE_URL"),
		TMDBRequestsPerSecond: envFloat("ZETFLIX_TMDB_RPS", 40),

		WatchlistKey: os.Getenv("ZETFLIX_WATCHLIST_KEY"),

		Log: Log{
			Level:      envOr("ZETFLIX_LOG_LEVEL", "info"),
			File:       os.Getenv("ZETFLIX_LOG_FILE"),
			Pretty:     envBool("ZETFLIX_LOG_PRETTY"),
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unknown storage backend %q (expected %s or %s)", c.Storage, StorageSQLite, StorageFile)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("empty listen address")
	}
	if c.TMDBRequestsPerSecond < 0 {
		return fmt.Errorf("negative tmdb requests per second")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return v
}
