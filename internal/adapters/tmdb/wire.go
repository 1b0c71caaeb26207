package tmdb

import "github.com/Guilhem-Bonnet/zetflix/internal/domain"

// mediaResult couvre les deux formes TMDB (film: title/release_date,
// série: name/first_air_date). Le kind est fourni par l'appelant ou par
// media_type en recherche multi.
type mediaResult struct {
	ID               int      `json:"id"`
	MediaType        string   `json:"media_type"`
	Title            string   `json:"title"`
	Name             string   `json:"name"`
	OriginalTitle    string   `json:"original_title"`
	OriginalName     string   `json:"original_name"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	ReleaseDate      string   `json:"release_date"`
	FirstAirDate     string   `json:"first_air_date"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	GenreIDs         []int    `json:"genre_ids"`
	Popularity       float64  `json:"popularity"`
	OriginalLanguage string   `json:"original_language"`
	Adult            bool     `json:"adult"`
	OriginCountry    []string `json:"origin_country"`
}

func (r mediaResult) toDomain(kind domain.MediaType) domain.Media {
	m := domain.Media{
		ID:               r.ID,
		Kind:             kind,
		Overview:         r.Overview,
		PosterPath:       deref(r.PosterPath),
		BackdropPath:     deref(r.BackdropPath),
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		GenreIDs:         r.GenreIDs,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
		Adult:            r.Adult,
	}
	switch kind {
	case domain.MediaTV:
		m.Title = r.Name
		m.OriginalTitle = r.OriginalName
		m.ReleaseDate = r.FirstAirDate
		m.OriginCountry = r.OriginCountry
	default:
		m.Title = r.Title
		m.OriginalTitle = r.OriginalTitle
		m.ReleaseDate = r.ReleaseDate
	}
	return m
}

type pageResponse struct {
	Page         int           `json:"page"`
	Results      []mediaResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// toDomain avec kind vide lit media_type pour chaque résultat et écarte
// tout ce qui n'est ni movie ni tv.
func (p pageResponse) toDomain(kind domain.MediaType) domain.Page[domain.Media] {
	out := domain.Page[domain.Media]{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Results:      make([]domain.Media, 0, len(p.Results)),
	}
	for _, r := range p.Results {
		k := kind
		if k == "" {
			parsed, err := domain.ParseMediaType(r.MediaType)
			if err != nil {
				continue
			}
			k = parsed
		}
		out.Results = append(out.Results, r.toDomain(k))
	}
	return out
}

type genresResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type productionCompany struct {
	ID            int     `json:"id"`
	LogoPath      *string `json:"logo_path"`
	Name          string  `json:"name"`
	OriginCountry string  `json:"origin_country"`
}

type productionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type spokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

type movieDetailsResponse struct {
	mediaResult
	Genres              []domain.Genre      `json:"genres"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Homepage            string              `json:"homepage"`
	ProductionCompanies []productionCompany `json:"production_companies"`
	ProductionCountries []productionCountry `json:"production_countries"`
	SpokenLanguages     []spokenLanguage    `json:"spoken_languages"`
}

func (r movieDetailsResponse) toDomain() domain.MovieDetails {
	d := domain.MovieDetails{
		Media:    r.mediaResult.toDomain(domain.MediaMovie),
		Genres:   r.Genres,
		Runtime:  r.Runtime,
		Budget:   r.Budget,
		Revenue:  r.Revenue,
		Status:   r.Status,
		Tagline:  r.Tagline,
		Homepage: r.Homepage,
	}
	d.GenreIDs = genreIDs(d.GenreIDs, r.Genres)
	for _, c := range r.ProductionCompanies {
		d.ProductionCompanies = append(d.ProductionCompanies, domain.ProductionCompany{
			ID: c.ID, LogoPath: deref(c.LogoPath), Name: c.Name, OriginCountry: c.OriginCountry,
		})
	}
	for _, c := range r.ProductionCountries {
		d.ProductionCountries = append(d.ProductionCountries, domain.ProductionCountry{ISO31661: c.ISO31661, Name: c.Name})
	}
	for _, l := range r.SpokenLanguages {
		d.SpokenLanguages = append(d.SpokenLanguages, domain.SpokenLanguage{EnglishName: l.EnglishName, ISO6391: l.ISO6391, Name: l.Name})
	}
	return d
}

type tvDetailsResponse struct {
	mediaResult
	Genres           []domain.Genre `json:"genres"`
	NumberOfSeasons  int            `json:"number_of_seasons"`
	NumberOfEpisodes int            `json:"number_of_episodes"`
	EpisodeRunTime   []int          `json:"episode_run_time"`
	Status           string         `json:"status"`
	Tagline          string         `json:"tagline"`
	Homepage         string         `json:"homepage"`
	LastAirDate      string         `json:"last_air_date"`
}

func (r tvDetailsResponse) toDomain() domain.TVDetails {
	d := domain.TVDetails{
		Media:            r.mediaResult.toDomain(domain.MediaTV),
		Genres:           r.Genres,
		NumberOfSeasons:  r.NumberOfSeasons,
		NumberOfEpisodes: r.NumberOfEpisodes,
		EpisodeRunTime:   r.EpisodeRunTime,
		Status:           r.Status,
		Tagline:          r.Tagline,
		Homepage:         r.Homepage,
		LastAirDate:      r.LastAirDate,
	}
	d.GenreIDs = genreIDs(d.GenreIDs, r.Genres)
	return d
}

type videosResponse struct {
	Results []struct {
		ID          string `json:"id"`
		Key         string `json:"key"`
		Name        string `json:"name"`
		Site        string `json:"site"`
		Type        string `json:"type"`
		Official    bool   `json:"official"`
		PublishedAt string `json:"published_at"`
	} `json:"results"`
}

func (r videosResponse) toDomain() []domain.Video {
	out := make([]domain.Video, 0, len(r.Results))
	for _, v := range r.Results {
		out = append(out, domain.Video{
			ID: v.ID, Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type, Official: v.Official, PublishedAt: v.PublishedAt,
		})
	}
	return out
}

type creditsResponse struct {
	Cast []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Character   string  `json:"character"`
		ProfilePath *string `json:"profile_path"`
		Order       int     `json:"order"`
	} `json:"cast"`
}

func (r creditsResponse) toDomain() []domain.CastMember {
	out := make([]domain.CastMember, 0, len(r.Cast))
	for _, c := range r.Cast {
		out = append(out, domain.CastMember{
			ID: c.ID, Name: c.Name, Character: c.Character, ProfilePath: deref(c.ProfilePath), Order: c.Order,
		})
	}
	return out
}

func genreIDs(existing []int, genres []domain.Genre) []int {
	if len(existing) > 0 || len(genres) == 0 {
		return existing
	}
	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
