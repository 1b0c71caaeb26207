package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
)

// Listing identifie une liste TMDB paginée.
type Listing string

const (
	ListingTrendingMovies   Listing = "trending_movies"
	ListingPopularMovies    Listing = "popular_movies"
	ListingTopRatedMovies   Listing = "top_rated_movies"
	ListingUpcomingMovies   Listing = "upcoming_movies"
	ListingNowPlayingMovies Listing = "now_playing_movies"
	ListingTrendingTV       Listing = "trending_tv"
	ListingPopularTV        Listing = "popular_tv"
	ListingTopRatedTV       Listing = "top_rated_tv"
)

type MediaPage = domain.Page[domain.Media]

// Catalog est la source de métadonnées en lecture seule.
// Une requête = un appel, pas de retry.
type Catalog interface {
	List(ctx context.Context, listing Listing, page int) (MediaPage, error)
	Discover(ctx context.Context, mediaType domain.MediaType, params map[string]string) (MediaPage, error)
	Search(ctx context.Context, kind domain.SearchKind, query string, page int) (MediaPage, error)
	Genres(ctx context.Context, mediaType domain.MediaType) ([]domain.Genre, error)

	MovieDetails(ctx context.Context, id int) (domain.MovieDetails, error)
	MovieVideos(ctx context.Context, id int) ([]domain.Video, error)
	MovieCredits(ctx context.Context, id int) ([]domain.CastMember, error)
	SimilarMovies(ctx context.Context, id int, page int) (MediaPage, error)

	TVDetails(ctx context.Context, id int) (domain.TVDetails, error)
	TVVideos(ctx context.Context, id int) ([]domain.Video, error)
	TVCredits(ctx context.Context, id int) ([]domain.CastMember, error)
}
