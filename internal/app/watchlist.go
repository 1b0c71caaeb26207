package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
	"github.com/rs/zerolog"
)

const DefaultWatchlistKey = "zetflix-watchlist"

type WatchlistOptions struct {
	// Key est la clé du blob persisté (défaut: DefaultWatchlistKey).
	Key string
	Bus ports.EventBus
	Now func() time.Time
}

// WatchlistStore maintient la collection (id, mediaType) unique et la
// réécrit intégralement dans le BlobStore après chaque mutation effective.
//
// entries est en ordre d'insertion, le plus récent en tête.
type WatchlistStore struct {
	logger zerolog.Logger
	blobs  ports.BlobStore
	key    string
	bus    ports.EventBus
	now    func() time.Time

	mu      sync.RWMutex
	entries []domain.WatchlistEntry
}

func NewWatchlistStore(logger zerolog.Logger, blobs ports.BlobStore, opts WatchlistOptions) *WatchlistStore {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultWatchlistKey
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &WatchlistStore{
		logger:  logger,
		blobs:   blobs,
		key:     key,
		bus:     opts.Bus,
		now:     now,
		entries: []domain.WatchlistEntry{},
	}
}

// Load lit l'état persisté. Toute erreur de lecture ou de décodage est
// loguée et donne une collection vide; rien n'est propagé.
func (s *WatchlistStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []domain.WatchlistEntry{}

	b, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("watchlist read failed, starting empty")
		}
		return
	}
	if len(b) == 0 {
		return
	}

	var stored []domain.WatchlistEntry
	if err := json.Unmarshal(b, &stored); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("watchlist corrupted, starting empty")
		return
	}

	// Les doublons éventuels sont écartés (premier gagnant). L'ordre
	// persisté est conservé en tête-d'abord.
	seen := make(map[domain.WatchlistKey]struct{}, len(stored))
	out := make([]domain.WatchlistEntry, 0, len(stored))
	for _, e := range stored {
		if !e.MediaType.Valid() || e.ID <= 0 {
			continue
		}
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		e.Kind = e.MediaType
		out = append(out, e)
	}
	s.entries = out
	s.logger.Debug().Int("entries", len(out)).Msg("watchlist loaded")
}

// Insert ajoute une copie de media si la clé est absente. inserted vaut
// false pour un doublon (no-op, aucune écriture). err n'est renvoyée que
// sur échec de persistance, auquel cas la collection reste inchangée.
func (s *WatchlistStore) Insert(ctx context.Context, media domain.Media, mediaType domain.MediaType) (entry domain.WatchlistEntry, inserted bool, err error) {
	if !mediaType.Valid() {
		return domain.WatchlistEntry{}, false, domain.ErrInvalidMediaType
	}
	if media.ID <= 0 {
		return domain.WatchlistEntry{}, false, fmt.Errorf("%w: media id must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.WatchlistKey{ID: media.ID, MediaType: mediaType}
	if i := s.indexLocked(key); i >= 0 {
		return cloneEntry(s.entries[i]), false, nil
	}

	entry = domain.WatchlistEntry{
		Media:     media.Clone(),
		MediaType: mediaType,
		AddedAt:   s.now().UTC(),
	}
	entry.Kind = mediaType

	prev := s.entries
	next := make([]domain.WatchlistEntry, 0, len(prev)+1)
	next = append(next, entry)
	next = append(next, prev...)

	if err := s.persistLocked(ctx, next); err != nil {
		return domain.WatchlistEntry{}, false, err
	}
	s.entries = next
	s.publish("watchlist.added", entry)
	return cloneEntry(entry), true, nil
}

// Remove retire la clé si elle est présente. Une clé absente n'est pas
// une erreur.
func (s *WatchlistStore) Remove(ctx context.Context, id int, mediaType domain.MediaType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.WatchlistKey{ID: id, MediaType: mediaType}
	i := s.indexLocked(key)
	if i < 0 {
		return false, nil
	}

	next := make([]domain.WatchlistEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)

	if err := s.persistLocked(ctx, next); err != nil {
		return false, err
	}
	removed := s.entries[i]
	s.entries = next
	s.publish("watchlist.removed", removed)
	return true, nil
}

func (s *WatchlistStore) Contains(id int, mediaType domain.MediaType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(domain.WatchlistKey{ID: id, MediaType: mediaType}) >= 0
}

// Get renvoie l'entrée pour la clé, ou ErrNotFound.
func (s *WatchlistStore) Get(id int, mediaType domain.MediaType) (domain.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(domain.WatchlistKey{ID: id, MediaType: mediaType})
	if i < 0 {
		return domain.WatchlistEntry{}, ErrNotFound
	}
	return cloneEntry(s.entries[i]), nil
}

func (s *WatchlistStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := []domain.WatchlistEntry{}
	if err := s.persistLocked(ctx, empty); err != nil {
		return err
	}
	s.entries = empty
	s.publish("watchlist.cleared", domain.WatchlistStats{})
	return nil
}

func (s *WatchlistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// List renvoie une copie triée par addedAt décroissant. À addedAt égal,
// l'ordre d'insertion (plus récent d'abord) est conservé.
func (s *WatchlistStore) List() []domain.WatchlistEntry {
	s.mu.RLock()
	out := make([]domain.WatchlistEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, cloneEntry(e))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

func (s *WatchlistStore) Stats() domain.WatchlistStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.WatchlistStats{Total: len(s.entries)}
	for _, e := range s.entries {
		switch e.MediaType {
		case domain.MediaMovie:
			st.Movies++
		case domain.MediaTV:
			st.TV++
		}
	}
	return st
}

func (s *WatchlistStore) indexLocked(key domain.WatchlistKey) int {
	for i, e := range s.entries {
		if e.ID == key.ID && e.MediaType == key.MediaType {
			return i
		}
	}
	return -1
}

func (s *WatchlistStore) persistLocked(ctx context.Context, entries []domain.WatchlistEntry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, b); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("watchlist write failed")
		return fmt.Errorf("persist watchlist: %w", err)
	}
	return nil
}

func (s *WatchlistStore) publish(topic string, v any) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.bus.Publish(topic, b)
}

func cloneEntry(e domain.WatchlistEntry) domain.WatchlistEntry {
	e.Media = e.Media.Clone()
	return e
}
