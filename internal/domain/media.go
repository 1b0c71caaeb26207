package domain

import (
	"errors"
	"strings"
)

type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

var ErrInvalidMediaType = errors.New("invalid media type (expected movie or tv)")

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaMovie:
		return MediaMovie, nil
	case MediaTV:
		return MediaTV, nil
	default:
		return "", ErrInvalidMediaType
	}
}

func (t MediaType) Valid() bool {
	return t == MediaMovie || t == MediaTV
}

// Media est le résumé commun film/série. Kind est toujours renseigné par
// l'adapter qui l'a produit (jamais déduit de la présence de champs).
type Media struct {
	ID               int       `json:"id"`
	Kind             MediaType `json:"kind"`
	Title            string    `json:"title"`
	OriginalTitle    string    `json:"originalTitle,omitempty"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"posterPath,omitempty"`
	BackdropPath     string    `json:"backdropPath,omitempty"`
	ReleaseDate      string    `json:"releaseDate,omitempty"`
	VoteAverage      float64   `json:"voteAverage"`
	VoteCount        int       `json:"voteCount"`
	GenreIDs         []int     `json:"genreIds,omitempty"`
	Popularity       float64   `json:"popularity"`
	OriginalLanguage string    `json:"originalLanguage,omitempty"`
	Adult            bool      `json:"adult"`
	OriginCountry    []string  `json:"originCountry,omitempty"`
}

// Clone renvoie une copie sans partage des slices.
func (m Media) Clone() Media {
	out := m
	if m.GenreIDs != nil {
		out.GenreIDs = append([]int(nil), m.GenreIDs...)
	}
	if m.OriginCountry != nil {
		out.OriginCountry = append([]string(nil), m.OriginCountry...)
	}
	return out
}

func (m Media) HasImage() bool {
	return m.PosterPath != "" || m.BackdropPath != ""
}

type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID            int    `json:"id"`
	LogoPath      string `json:"logoPath,omitempty"`
	Name          string `json:"name"`
	OriginCountry string `json:"originCountry,omitempty"`
}

type ProductionCountry struct {
	ISO31661 string `json:"iso31661"`
	Name     string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"englishName"`
	ISO6391     string `json:"iso6391"`
	Name        string `json:"name"`
}

type MovieDetails struct {
	Media
	Genres              []Genre             `json:"genres"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline,omitempty"`
	Homepage            string              `json:"homepage,omitempty"`
	ProductionCompanies []ProductionCompany `json:"productionCompanies,omitempty"`
	ProductionCountries []ProductionCountry `json:"productionCountries,omitempty"`
	SpokenLanguages     []SpokenLanguage    `json:"spokenLanguages,omitempty"`
}

type TVDetails struct {
	Media
	Genres           []Genre `json:"genres"`
	NumberOfSeasons  int     `json:"numberOfSeasons"`
	NumberOfEpisodes int     `json:"numberOfEpisodes"`
	EpisodeRunTime   []int   `json:"episodeRunTime,omitempty"`
	Status           string  `json:"status"`
	Tagline          string  `json:"tagline,omitempty"`
	Homepage         string  `json:"homepage,omitempty"`
	LastAirDate      string  `json:"lastAirDate,omitempty"`
}

type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
	Order       int    `json:"order"`
}

// SearchKind sélectionne l'endpoint de recherche.
type SearchKind string

const (
	SearchMulti SearchKind = "multi"
	SearchMovie SearchKind = "movie"
	SearchTV    SearchKind = "tv"
)

func ParseSearchKind(s string) (SearchKind, error) {
	switch SearchKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchMulti:
		return SearchMulti, nil
	case SearchMovie:
		return SearchMovie, nil
	case SearchTV:
		return SearchTV, nil
	default:
		return "", errors.New("invalid search type (expected multi, movie or tv)")
	}
}
