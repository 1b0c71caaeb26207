package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/httpjson"
)

type CatalogHandler struct {
	catalog *app.CatalogService
}

func NewCatalogHandler(catalog *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/home", h.home)
	r.Get("/movies", h.listing(domain.MediaMovie))
	r.Get("/movies/{id}", h.movie)
	r.Get("/tv", h.listing(domain.MediaTV))
	r.Get("/tv/{id}", h.show)
	r.Get("/genres/{mediaType}", h.genres)
	r.Get("/search", h.search)
}

func (h *CatalogHandler) home(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.Home(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *CatalogHandler) listing(mediaType domain.MediaType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page", 1)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		genreID := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("genre")); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				genreID = id
			} else {
				g, err := h.catalog.ResolveGenre(r.Context(), mediaType, raw)
				if err != nil {
					writeAppError(w, r, err)
					return
				}
				genreID = g.ID
			}
		}

		var out app.ListingDTO
		if mediaType == domain.MediaTV {
			out, err = h.catalog.TVShows(r.Context(), genreID, page)
		} else {
			out, err = h.catalog.Movies(r.Context(), genreID, page)
		}
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func (h *CatalogHandler) movie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.catalog.MovieDetail(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *CatalogHandler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.catalog.TVDetail(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *CatalogHandler) genres(w http.ResponseWriter, r *http.Request) {
	mediaType, err := domain.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	genres, err := h.catalog.Genres(r.Context(), mediaType)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"genres": genres})
}

func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := domain.ParseSearchKind(q.Get("type"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.catalog.Search(r.Context(), kind, q.Get("q"), page)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

// pathID lit {id}; écrit un 400 et renvoie false s'il est invalide.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
