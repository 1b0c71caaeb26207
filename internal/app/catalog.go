package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

const (
	heroSize = 5
	castSize = 10
)

// CatalogService assemble les données d'un écran à partir de lots d'appels
// au catalogue. Un lot attend que tous ses appels soient terminés et échoue
// en entier dès qu'un appel échoue.
type CatalogService struct {
	logger    zerolog.Logger
	catalog   ports.Catalog
	watchlist *WatchlistStore
}

func NewCatalogService(logger zerolog.Logger, catalog ports.Catalog, watchlist *WatchlistStore) *CatalogService {
	return &CatalogService{logger: logger, catalog: catalog, watchlist: watchlist}
}

func (s *CatalogService) batch(ctx context.Context) *pool.ContextPool {
	return pool.New().WithErrors().WithFirstError().WithContext(ctx)
}

type MediaRowDTO struct {
	Title     string           `json:"title"`
	MediaType domain.MediaType `json:"mediaType"`
	Items     []domain.Media   `json:"items"`
}

type HomeDTO struct {
	Hero []domain.Media `json:"hero"`
	Rows []MediaRowDTO  `json:"rows"`
}

type homeRow struct {
	title     string
	mediaType domain.MediaType
	listing   ports.Listing
}

var homeRows = []homeRow{
	{"Trending Movies", domain.MediaMovie, ports.ListingTrendingMovies},
	{"Popular Movies", domain.MediaMovie, ports.ListingPopularMovies},
	{"Popular TV Shows", domain.MediaTV, ports.ListingPopularTV},
	{"Top Rated Movies", domain.MediaMovie, ports.ListingTopRatedMovies},
	{"Top Rated TV Shows", domain.MediaTV, ports.ListingTopRatedTV},
	{"Upcoming Movies", domain.MediaMovie, ports.ListingUpcomingMovies},
}

func (s *CatalogService) Home(ctx context.Context) (HomeDTO, error) {
	pages := make([]ports.MediaPage, len(homeRows))
	p := s.batch(ctx)
	for i, row := range homeRows {
		i, row := i, row
		p.Go(func(ctx context.Context) error {
			page, err := s.catalog.List(ctx, row.listing, 1)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("home batch failed")
		return HomeDTO{}, err
	}

	out := HomeDTO{Rows: make([]MediaRowDTO, 0, len(homeRows))}
	for i, row := range homeRows {
		out.Rows = append(out.Rows, MediaRowDTO{Title: row.title, MediaType: row.mediaType, Items: nonNil(pages[i].Results)})
	}
	trending := pages[0].Results
	if len(trending) > heroSize {
		trending = trending[:heroSize]
	}
	out.Hero = nonNil(trending)
	return out, nil
}

type ListingDTO struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	MediaType     domain.MediaType `json:"mediaType"`
	SelectedGenre *domain.Genre    `json:"selectedGenre,omitempty"`
	Genres        []domain.Genre   `json:"genres,omitempty"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	TotalResults  int              `json:"totalResults"`
	HasMore       bool             `json:"hasMore"`
	Results       []domain.Media   `json:"results"`
}

// Movies renvoie une page de films populaires, ou de films du genre donné
// (genreID > 0) via discover. La liste des genres est jointe en page 1.
func (s *CatalogService) Movies(ctx context.Context, genreID, page int) (ListingDTO, error) {
	return s.listing(ctx, domain.MediaMovie, genreID, page)
}

// TVShows suit Movies. Le filtre de genre passe par /discover/tv pour
// porter sur tout le catalogue et pas seulement sur la page courante.
func (s *CatalogService) TVShows(ctx context.Context, genreID, page int) (ListingDTO, error) {
	return s.listing(ctx, domain.MediaTV, genreID, page)
}

func (s *CatalogService) listing(ctx context.Context, mediaType domain.MediaType, genreID, page int) (ListingDTO, error) {
	if page <= 0 {
		page = 1
	}
	if genreID < 0 {
		return ListingDTO{}, fmt.Errorf("%w: genre id must be positive", ErrInvalidInput)
	}

	var (
		results ports.MediaPage
		genres  []domain.Genre
	)
	withGenres := page == 1 || genreID > 0

	p := s.batch(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		if genreID > 0 {
			results, err = s.catalog.Discover(ctx, mediaType, map[string]string{
				"with_genres": strconv.Itoa(genreID),
				"page":        strconv.Itoa(page),
			})
		} else {
			results, err = s.catalog.List(ctx, popularListing(mediaType), page)
		}
		return err
	})
	if withGenres {
		p.Go(func(ctx context.Context) error {
			var err error
			genres, err = s.catalog.Genres(ctx, mediaType)
			return err
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.Warn().Err(err).Str("media_type", string(mediaType)).Int("genre", genreID).Int("page", page).Msg("listing batch failed")
		return ListingDTO{}, err
	}

	noun := "Movies"
	if mediaType == domain.MediaTV {
		noun = "TV Shows"
	}
	out := ListingDTO{
		Title:        "Popular " + noun,
		Description:  "Discover the most popular " + strings.ToLower(noun),
		MediaType:    mediaType,
		Page:         results.Page,
		TotalPages:   results.TotalPages,
		TotalResults: results.TotalResults,
		HasMore:      results.HasMore(),
		Results:      nonNil(results.Results),
	}
	if out.Page == 0 {
		out.Page = page
	}
	if page == 1 {
		out.Genres = genres
	}
	if genreID > 0 {
		for _, g := range genres {
			if g.ID == genreID {
				g := g
				out.SelectedGenre = &g
				out.Title = g.Name + " " + noun
				out.Description = "Discover the " + strings.ToLower(g.Name) + " " + strings.ToLower(noun)
				break
			}
		}
	}
	return out, nil
}

func popularListing(mediaType domain.MediaType) ports.Listing {
	if mediaType == domain.MediaTV {
		return ports.ListingPopularTV
	}
	return ports.ListingPopularMovies
}

// ResolveGenre accepte un identifiant numérique, un nom ou un slug.
func (s *CatalogService) ResolveGenre(ctx context.Context, mediaType domain.MediaType, raw string) (domain.Genre, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Genre{}, fmt.Errorf("%w: empty genre", ErrInvalidInput)
	}
	genres, err := s.catalog.Genres(ctx, mediaType)
	if err != nil {
		return domain.Genre{}, err
	}
	if id, err := strconv.Atoi(raw); err == nil {
		for _, g := range genres {
			if g.ID == id {
				return g, nil
			}
		}
		return domain.Genre{}, ErrNotFound
	}
	slug := GenreSlug(raw)
	for _, g := range genres {
		if GenreSlug(g.Name) == slug {
			return g, nil
		}
	}
	return domain.Genre{}, ErrNotFound
}

func (s *CatalogService) Genres(ctx context.Context, mediaType domain.MediaType) ([]domain.Genre, error) {
	genres, err := s.catalog.Genres(ctx, mediaType)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	return genres, nil
}

type MovieDetailDTO struct {
	Movie       domain.MovieDetails `json:"movie"`
	Trailer     *domain.Video       `json:"trailer,omitempty"`
	Videos      []domain.Video      `json:"videos"`
	Cast        []domain.CastMember `json:"cast"`
	Similar     []domain.Media      `json:"similar"`
	RatingText  string              `json:"ratingText"`
	RuntimeText string              `json:"runtimeText,omitempty"`
	BudgetText  string              `json:"budgetText"`
	RevenueText string              `json:"revenueText"`
	InWatchlist bool                `json:"inWatchlist"`
}

func (s *CatalogService) MovieDetail(ctx context.Context, id int) (MovieDetailDTO, error) {
	if id <= 0 {
		return MovieDetailDTO{}, fmt.Errorf("%w: movie id must be positive", ErrInvalidInput)
	}

	var (
		movie   domain.MovieDetails
		videos  []domain.Video
		cast    []domain.CastMember
		similar ports.MediaPage
	)
	p := s.batch(ctx)
	p.Go(func(ctx context.Context) (err error) {
		movie, err = s.catalog.MovieDetails(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		videos, err = s.catalog.MovieVideos(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		cast, err = s.catalog.MovieCredits(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		similar, err = s.catalog.SimilarMovies(ctx, id, 1)
		return err
	})
	if err := p.Wait(); err != nil {
		s.logger.Warn().Err(err).Int("movie_id", id).Msg("movie detail batch failed")
		return MovieDetailDTO{}, err
	}

	yt := youTubeOnly(videos)
	return MovieDetailDTO{
		Movie:       movie,
		Trailer:     pickTrailer(yt),
		Videos:      yt,
		Cast:        topCast(cast),
		Similar:     nonNil(similar.Results),
		RatingText:  FormatRating(movie.VoteAverage),
		RuntimeText: FormatRuntime(movie.Runtime),
		BudgetText:  FormatUSD(movie.Budget),
		RevenueText: FormatUSD(movie.Revenue),
		InWatchlist: s.inWatchlist(movie.ID, domain.MediaMovie),
	}, nil
}

type TVDetailDTO struct {
	Show        domain.TVDetails    `json:"show"`
	Trailer     *domain.Video       `json:"trailer,omitempty"`
	Videos      []domain.Video      `json:"videos"`
	Cast        []domain.CastMember `json:"cast"`
	RatingText  string              `json:"ratingText"`
	InWatchlist bool                `json:"inWatchlist"`
}

func (s *CatalogService) TVDetail(ctx context.Context, id int) (TVDetailDTO, error) {
	if id <= 0 {
		return TVDetailDTO{}, fmt.Errorf("%w: tv id must be positive", ErrInvalidInput)
	}

	var (
		show   domain.TVDetails
		videos []domain.Video
		cast   []domain.CastMember
	)
	p := s.batch(ctx)
	p.Go(func(ctx context.Context) (err error) {
		show, err = s.catalog.TVDetails(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		videos, err = s.catalog.TVVideos(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		cast, err = s.catalog.TVCredits(ctx, id)
		return err
	})
	if err := p.Wait(); err != nil {
		s.logger.Warn().Err(err).Int("tv_id", id).Msg("tv detail batch failed")
		return TVDetailDTO{}, err
	}

	yt := youTubeOnly(videos)
	return TVDetailDTO{
		Show:        show,
		Trailer:     pickTrailer(yt),
		Videos:      yt,
		Cast:        topCast(cast),
		RatingText:  FormatRating(show.VoteAverage),
		InWatchlist: s.inWatchlist(show.ID, domain.MediaTV),
	}, nil
}

type SearchDTO struct {
	Query        string            `json:"query"`
	Type         domain.SearchKind `json:"type"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"totalPages"`
	TotalResults int               `json:"totalResults"`
	HasMore      bool              `json:"hasMore"`
	Results      []domain.Media    `json:"results"`
}

// Search interroge l'endpoint correspondant à kind. Une requête vide ne
// déclenche aucun appel. Les résultats sans image sont écartés.
func (s *CatalogService) Search(ctx context.Context, kind domain.SearchKind, query string, page int) (SearchDTO, error) {
	query = NormalizeQuery(query)
	if page <= 0 {
		page = 1
	}
	out := SearchDTO{Query: query, Type: kind, Page: page, Results: []domain.Media{}}
	if query == "" {
		return out, nil
	}

	res, err := s.catalog.Search(ctx, kind, query, page)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Str("type", string(kind)).Msg("search failed")
		return SearchDTO{}, err
	}
	for _, m := range res.Results {
		if !m.Kind.Valid() || !m.HasImage() {
			continue
		}
		out.Results = append(out.Results, m)
	}
	if res.Page > 0 {
		out.Page = res.Page
	}
	out.TotalPages = res.TotalPages
	out.TotalResults = res.TotalResults
	out.HasMore = out.Page < out.TotalPages
	return out, nil
}

// Summary récupère le résumé d'un média à partir de son id, utilisé quand
// un client ajoute à la watchlist sans fournir le payload.
func (s *CatalogService) Summary(ctx context.Context, id int, mediaType domain.MediaType) (domain.Media, error) {
	switch mediaType {
	case domain.MediaMovie:
		d, err := s.catalog.MovieDetails(ctx, id)
		if err != nil {
			return domain.Media{}, err
		}
		return d.Media, nil
	case domain.MediaTV:
		d, err := s.catalog.TVDetails(ctx, id)
		if err != nil {
			return domain.Media{}, err
		}
		return d.Media, nil
	default:
		return domain.Media{}, domain.ErrInvalidMediaType
	}
}

func (s *CatalogService) inWatchlist(id int, mediaType domain.MediaType) bool {
	if s.watchlist == nil {
		return false
	}
	return s.watchlist.Contains(id, mediaType)
}

func youTubeOnly(videos []domain.Video) []domain.Video {
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if v.Site == "YouTube" {
			out = append(out, v)
		}
	}
	return out
}

// pickTrailer: premier trailer officiel, sinon première vidéo.
func pickTrailer(videos []domain.Video) *domain.Video {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Official {
			v := v
			return &v
		}
	}
	if len(videos) > 0 {
		v := videos[0]
		return &v
	}
	return nil
}

func topCast(cast []domain.CastMember) []domain.CastMember {
	if len(cast) > castSize {
		cast = cast[:castSize]
	}
	return append([]domain.CastMember{}, cast...)
}

func nonNil(items []domain.Media) []domain.Media {
	if items == nil {
		return []domain.Media{}
	}
	return items
}
