package domain

type Settings struct {
	// Langue des métadonnées (paramètre TMDB "language").
	Language string `json:"language"`
	// Région optionnelle (paramètre TMDB "region").
	Region string `json:"region,omitempty"`

	IncludeAdult bool `json:"includeAdult"`

	// Plafond de requêtes TMDB simultanées, ajustable à chaud.
	MaxConcurrentRequests int `json:"maxConcurrentRequests"`
}

func DefaultSettings() Settings {
	return Settings{
		Language:              "en-US",
		IncludeAdult:          false,
		MaxConcurrentRequests: 6,
	}
}
