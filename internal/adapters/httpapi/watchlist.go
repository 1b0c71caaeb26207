package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/httpjson"
)

type WatchlistHandler struct {
	watchlist *app.WatchlistStore
	// catalog est optionnel: sans lui, POST exige le payload media.
	catalog *app.CatalogService
}

func NewWatchlistHandler(watchlist *app.WatchlistStore, catalog *app.CatalogService) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, catalog: catalog}
}

type watchlistResponse struct {
	Items []domain.WatchlistEntry `json:"items"`
	Stats domain.WatchlistStats   `json:"stats"`
}

type watchlistAddRequest struct {
	MediaType string        `json:"mediaType"`
	ID        int           `json:"id"`
	Media     *domain.Media `json:"media"`
}

type watchlistAddResponse struct {
	Entry    domain.WatchlistEntry `json:"entry"`
	Inserted bool                  `json:"inserted"`
}

type watchlistMembership struct {
	InWatchlist bool                   `json:"inWatchlist"`
	Entry       *domain.WatchlistEntry `json:"entry,omitempty"`
}

func (h *WatchlistHandler) Routes(r chi.Router) {
	r.Route("/watchlist", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Delete("/", h.clear)
		r.Get("/{mediaType}/{id}", h.get)
		r.Delete("/{mediaType}/{id}", h.remove)
	})
}

func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, watchlistResponse{
		Items: h.watchlist.List(),
		Stats: h.watchlist.Stats(),
	})
}

func (h *WatchlistHandler) add(w http.ResponseWriter, r *http.Request) {
	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	mediaType, err := domain.ParseMediaType(req.MediaType)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var media domain.Media
	switch {
	case req.Media != nil:
		media = *req.Media
		if media.ID == 0 {
			media.ID = req.ID
		}
	case req.ID > 0 && h.catalog != nil:
		media, err = h.catalog.Summary(r.Context(), req.ID, mediaType)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
	default:
		httpjson.WriteError(w, http.StatusBadRequest, "missing media")
		return
	}

	entry, inserted, err := h.watchlist.Insert(r.Context(), media, mediaType)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, watchlistAddResponse{Entry: entry, Inserted: inserted})
}

func (h *WatchlistHandler) get(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := watchlistKey(w, r)
	if !ok {
		return
	}
	entry, err := h.watchlist.Get(id, mediaType)
	if err != nil {
		// Absent n'est pas une erreur pour un test d'appartenance.
		httpjson.Write(w, http.StatusOK, watchlistMembership{InWatchlist: false})
		return
	}
	httpjson.Write(w, http.StatusOK, watchlistMembership{InWatchlist: true, Entry: &entry})
}

func (h *WatchlistHandler) remove(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := watchlistKey(w, r)
	if !ok {
		return
	}
	removed, err := h.watchlist.Remove(r.Context(), id, mediaType)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *WatchlistHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.watchlist.Clear(r.Context()); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func watchlistKey(w http.ResponseWriter, r *http.Request) (domain.MediaType, int, bool) {
	mediaType, err := domain.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return "", 0, false
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return "", 0, false
	}
	return mediaType, id, true
}
