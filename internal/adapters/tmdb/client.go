package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	// PlaceholderToken est la valeur d'exemple livrée dans les .env.
	PlaceholderToken = "YOUR_TMDB_API_KEY"
)

type Options struct {
	Token        string
	BaseURL      string
	ImageBaseURL string
	HTTPClient   *http.Client
	// Settings fournit language/region/includeAdult à chaque requête (optionnel).
	Settings func(ctx context.Context) (domain.Settings, error)
	// Limiter borne les requêtes simultanées (optionnel).
	Limiter *app.DynamicLimiter
	// RequestsPerSecond <= 0 désactive le limiteur de débit.
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// Client est un client TMDB v3 sans état: une requête, une réponse
// décodée ou une erreur. Aucun retry.
type Client struct {
	token    string
	baseURL  string
	images   Images
	httpc    *http.Client
	settings func(ctx context.Context) (domain.Settings, error)
	limiter  *app.DynamicLimiter
	rps      *rate.Limiter
	logger   zerolog.Logger
}

var _ ports.Catalog = (*Client)(nil)

func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	var rps *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rps = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		token:    strings.TrimSpace(opts.Token),
		baseURL:  base,
		images:   NewImages(opts.ImageBaseURL),
		httpc:    httpc,
		settings: opts.Settings,
		limiter:  opts.Limiter,
		rps:      rps,
		logger:   opts.Logger,
	}
}

func (c *Client) Images() Images { return c.images }

func (c *Client) Configured() bool {
	return c != nil && c.token != "" && c.token != PlaceholderToken
}

// get exécute GET {base}{path}?{query} et décode le JSON dans out.
func (c *Client) get(ctx context.Context, path string, query url.Values, withFilters bool, out any) error {
	if !c.Configured() {
		return &app.CodedError{Code: "not_configured", Status: http.StatusServiceUnavailable, Message: "set TMDB_API_TOKEN", Err: app.ErrNotConfigured}
	}
	if query == nil {
		query = url.Values{}
	}
	c.applySettings(ctx, query, withFilters)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	if c.rps != nil {
		if err := c.rps.Wait(ctx); err != nil {
			return err
		}
	}
	return c.limiter.Do(ctx, func() error {
		return c.do(ctx, path, endpoint, out)
	})
}

func (c *Client) do(ctx context.Context, path, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("tmdb request failed")
		return &app.CodedError{Code: "network_error", Status: http.StatusBadGateway, Err: fmt.Errorf("%w: %w", app.ErrUpstream, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("tmdb")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &app.CodedError{
			Code:    "http_status",
			Status:  resp.StatusCode,
			Message: "tmdb http error: " + resp.Status,
			Err:     app.ErrUpstream,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &app.CodedError{Code: "decode_error", Status: http.StatusBadGateway, Err: fmt.Errorf("%w: %w", app.ErrUpstream, err)}
	}
	return nil
}

func (c *Client) applySettings(ctx context.Context, q url.Values, withFilters bool) {
	if c.settings == nil {
		return
	}
	st, err := c.settings(ctx)
	if err != nil {
		// Les préférences sont optionnelles: TMDB applique ses défauts.
		c.logger.Debug().Err(err).Msg("settings unavailable for tmdb request")
		return
	}
	if lang := strings.TrimSpace(st.Language); lang != "" && q.Get("language") == "" {
		q.Set("language", lang)
	}
	if region := strings.TrimSpace(st.Region); region != "" && q.Get("region") == "" {
		q.Set("region", region)
	}
	if withFilters && q.Get("include_adult") == "" {
		q.Set("include_adult", strconv.FormatBool(st.IncludeAdult))
	}
}

func pageQuery(page int) url.Values {
	if page <= 0 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

var listingPaths = map[ports.Listing]struct {
	path string
	kind domain.MediaType
}{
	ports.ListingTrendingMovies:   {"/trending/movie/week", domain.MediaMovie},
	ports.ListingPopularMovies:    {"/movie/popular", domain.MediaMovie},
	ports.ListingTopRatedMovies:   {"/movie/top_rated", domain.MediaMovie},
	ports.ListingUpcomingMovies:   {"/movie/upcoming", domain.MediaMovie},
	ports.ListingNowPlayingMovies: {"/movie/now_playing", domain.MediaMovie},
	ports.ListingTrendingTV:       {"/trending/tv/week", domain.MediaTV},
	ports.ListingPopularTV:        {"/tv/popular", domain.MediaTV},
	ports.ListingTopRatedTV:       {"/tv/top_rated", domain.MediaTV},
}

func (c *Client) List(ctx context.Context, listing ports.Listing, page int) (ports.MediaPage, error) {
	lp, ok := listingPaths[listing]
	if !ok {
		return ports.MediaPage{}, fmt.Errorf("%w: unknown listing %q", app.ErrInvalidInput, listing)
	}
	var raw pageResponse
	if err := c.get(ctx, lp.path, pageQuery(page), false, &raw); err != nil {
		return ports.MediaPage{}, err
	}
	return raw.toDomain(lp.kind), nil
}

func (c *Client) Discover(ctx context.Context, mediaType domain.MediaType, params map[string]string) (ports.MediaPage, error) {
	if !mediaType.Valid() {
		return ports.MediaPage{}, domain.ErrInvalidMediaType
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	var raw pageResponse
	if err := c.get(ctx, "/discover/"+string(mediaType), q, true, &raw); err != nil {
		return ports.MediaPage{}, err
	}
	return raw.toDomain(mediaType), nil
}

func (c *Client) Search(ctx context.Context, kind domain.SearchKind, query string, page int) (ports.MediaPage, error) {
	if kind == "" {
		kind = domain.SearchMulti
	}
	q := pageQuery(page)
	q.Set("query", query)

	var raw pageResponse
	if err := c.get(ctx, "/search/"+string(kind), q, true, &raw); err != nil {
		return ports.MediaPage{}, err
	}
	switch kind {
	case domain.SearchMovie:
		return raw.toDomain(domain.MediaMovie), nil
	case domain.SearchTV:
		return raw.toDomain(domain.MediaTV), nil
	default:
		// multi: le type vient de media_type, les personnes sont écartées.
		return raw.toDomain(""), nil
	}
}

func (c *Client) Genres(ctx context.Context, mediaType domain.MediaType) ([]domain.Genre, error) {
	if !mediaType.Valid() {
		return nil, domain.ErrInvalidMediaType
	}
	var raw genresResponse
	if err := c.get(ctx, "/genre/"+string(mediaType)+"/list", nil, false, &raw); err != nil {
		return nil, err
	}
	return raw.Genres, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int) (domain.MovieDetails, error) {
	var raw movieDetailsResponse
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, false, &raw); err != nil {
		return domain.MovieDetails{}, err
	}
	return raw.toDomain(), nil
}

func (c *Client) MovieVideos(ctx context.Context, id int) ([]domain.Video, error) {
	return c.videos(ctx, "/movie/"+strconv.Itoa(id)+"/videos")
}

func (c *Client) MovieCredits(ctx context.Context, id int) ([]domain.CastMember, error) {
	return c.credits(ctx, "/movie/"+strconv.Itoa(id)+"/credits")
}

func (c *Client) SimilarMovies(ctx context.Context, id int, page int) (ports.MediaPage, error) {
	var raw pageResponse
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/similar", pageQuery(page), false, &raw); err != nil {
		return ports.MediaPage{}, err
	}
	return raw.toDomain(domain.MediaMovie), nil
}

func (c *Client) TVDetails(ctx context.Context, id int) (domain.TVDetails, error) {
	var raw tvDetailsResponse
	if err := c.get(ctx, "/tv/"+strconv.Itoa(id), nil, false, &raw); err != nil {
		return domain.TVDetails{}, err
	}
	return raw.toDomain(), nil
}

func (c *Client) TVVideos(ctx context.Context, id int) ([]domain.Video, error) {
	return c.videos(ctx, "/tv/"+strconv.Itoa(id)+"/videos")
}

func (c *Client) TVCredits(ctx context.Context, id int) ([]domain.CastMember, error) {
	return c.credits(ctx, "/tv/"+strconv.Itoa(id)+"/credits")
}

func (c *Client) videos(ctx context.Context, path string) ([]domain.Video, error) {
	var raw videosResponse
	if err := c.get(ctx, path, nil, false, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain(), nil
}

func (c *Client) credits(ctx context.Context, path string) ([]domain.CastMember, error) {
	var raw creditsResponse
	if err := c.get(ctx, path, nil, false, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain(), nil
}
