package domain

import (
	"strconv"
	"time"
)

type WatchlistKey struct {
	ID        int
	MediaType MediaType
}

func (k WatchlistKey) String() string {
	return string(k.MediaType) + ":" + strconv.Itoa(k.ID)
}

// WatchlistEntry est une copie figée du résumé au moment de l'ajout.
// Elle n'est jamais resynchronisée avec TMDB.
type WatchlistEntry struct {
	Media
	MediaType MediaType `json:"mediaType"`
	AddedAt   time.Time `json:"addedAt"`
}

func (e WatchlistEntry) Key() WatchlistKey {
	return WatchlistKey{ID: e.ID, MediaType: e.MediaType}
}

type WatchlistStats struct {
	Total  int `json:"total"`
	Movies int `json:"movies"`
	TV     int `json:"tv"`
}
