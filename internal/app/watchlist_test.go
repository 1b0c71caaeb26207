package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/zetflix/internal/domain"
	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

type memBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	puts    int
	putErr  error
	readErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}}
}

func (m *memBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *memBlobs) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBlobs) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// stepClock avance d'une minute à chaque appel.
func stepClock() func() time.Time {
	t := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newTestWatchlist(blobs ports.BlobStore) *WatchlistStore {
	s := NewWatchlistStore(zerolog.Nop(), blobs, WatchlistOptions{Now: stepClock()})
	s.Load(context.Background())
	return s
}

func movie(id int, title string) domain.Media {
	return domain.Media{ID: id, Title: title, PosterPath: "/p.jpg", GenreIDs: []int{18}}
}

func TestWatchlist_InsertAndContains(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	if _, inserted, err := s.Insert(ctx, movie(27205, "Inception"), domain.MediaMovie); err != nil || !inserted {
		t.Fatalf("Insert: inserted=%v err=%v", inserted, err)
	}
	if s.Len() != 1 || !s.Contains(27205, domain.MediaMovie) {
		t.Fatalf("expected entry to be queryable, len=%d", s.Len())
	}
	if s.Contains(27205, domain.MediaTV) {
		t.Fatalf("membership must use the composite key")
	}
}

func TestWatchlist_DuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobs()
	s := newTestWatchlist(blobs)

	first, _, err := s.Insert(ctx, movie(27205, "Inception"), domain.MediaMovie)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	puts := blobs.puts

	again, inserted, err := s.Insert(ctx, movie(27205, "Renamed"), domain.MediaMovie)
	if err != nil {
		t.Fatalf("Insert(dup): %v", err)
	}
	if inserted {
		t.Fatalf("duplicate must not be inserted")
	}
	if s.Len() != 1 {
		t.Fatalf("len: want 1, got %d", s.Len())
	}
	if again.Title != "Inception" || !again.AddedAt.Equal(first.AddedAt) {
		t.Fatalf("duplicate changed the stored entry: %+v", again)
	}
	if blobs.puts != puts {
		t.Fatalf("duplicate must not persist (puts %d -> %d)", puts, blobs.puts)
	}
}

func TestWatchlist_SameIDDifferentTypes(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	_, _, _ = s.Insert(ctx, movie(550, "Fight Club"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, movie(550, "Some Show"), domain.MediaTV)
	if s.Len() != 2 {
		t.Fatalf("len: want 2, got %d", s.Len())
	}
	st := s.Stats()
	if st.Total != 2 || st.Movies != 1 || st.TV != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestWatchlist_Remove(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	_, _, _ = s.Insert(ctx, movie(1, "One"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, movie(2, "Two"), domain.MediaMovie)

	removed, err := s.Remove(ctx, 1, domain.MediaMovie)
	if err != nil || !removed {
		t.Fatalf("Remove: removed=%v err=%v", removed, err)
	}
	if s.Len() != 1 || s.Contains(1, domain.MediaMovie) || !s.Contains(2, domain.MediaMovie) {
		t.Fatalf("expected only (2, movie) left, got %+v", s.List())
	}

	removed, err = s.Remove(ctx, 42, domain.MediaTV)
	if err != nil || removed {
		t.Fatalf("Remove(absent): removed=%v err=%v", removed, err)
	}
	if s.Len() != 1 {
		t.Fatalf("absent remove changed the collection")
	}
}

func TestWatchlist_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear(empty): %v", err)
	}
	for i := 1; i <= 3; i++ {
		_, _, _ = s.Insert(ctx, movie(i, "m"), domain.MediaMovie)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Len() != 0 || len(s.List()) != 0 {
		t.Fatalf("expected empty collection")
	}
}

func TestWatchlist_PersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobs()
	s := newTestWatchlist(blobs)

	_, _, _ = s.Insert(ctx, movie(550, "Fight Club"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, domain.Media{ID: 1399, Title: "Game of Thrones", OriginCountry: []string{"US"}}, domain.MediaTV)
	before := s.List()

	reloaded := newTestWatchlist(blobs)
	after := reloaded.List()
	if len(after) != len(before) {
		t.Fatalf("len: want %d, got %d", len(before), len(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.Key() != b.Key() || a.Title != b.Title || !a.AddedAt.Equal(b.AddedAt) || a.Kind != b.MediaType {
			t.Fatalf("entry %d differs: before=%+v after=%+v", i, b, a)
		}
	}
	if after[0].OriginCountry[0] != "US" {
		t.Fatalf("payload fields lost: %+v", after[0])
	}
}

func TestWatchlist_CorruptBlobLoadsEmpty(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[DefaultWatchlistKey] = []byte(`[{"id":1,"mediaType":"movie"`)
	s := newTestWatchlist(blobs)
	if s.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", s.Len())
	}

	blobs.readErr = errors.New("disk on fire")
	s.Load(context.Background())
	if s.Len() != 0 {
		t.Fatalf("read error must give an empty collection")
	}
}

func TestWatchlist_LoadDropsDuplicatesAndInvalid(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[DefaultWatchlistKey] = []byte(`[
		{"id":1,"mediaType":"movie","title":"first","addedAt":"2026-01-01T00:00:00Z"},
		{"id":1,"mediaType":"movie","title":"second","addedAt":"2026-01-02T00:00:00Z"},
		{"id":2,"mediaType":"person","title":"nope"},
		{"id":0,"mediaType":"tv","title":"nope"}
	]`)
	s := newTestWatchlist(blobs)
	if s.Len() != 1 {
		t.Fatalf("len: want 1, got %d", s.Len())
	}
	e, err := s.Get(1, domain.MediaMovie)
	if err != nil || e.Title != "first" {
		t.Fatalf("expected first occurrence kept, got %+v, %v", e, err)
	}
}

func TestWatchlist_SortedByAddedAtDesc(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	_, _, _ = s.Insert(ctx, movie(1, "A"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, movie(2, "B"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, movie(3, "C"), domain.MediaMovie)

	got := s.List()
	if len(got) != 3 || got[0].Title != "C" || got[1].Title != "B" || got[2].Title != "A" {
		t.Fatalf("want [C B A], got %v", titles(got))
	}
}

func TestWatchlist_PersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobs()
	s := newTestWatchlist(blobs)
	_, _, _ = s.Insert(ctx, movie(1, "A"), domain.MediaMovie)

	blobs.putErr = errors.New("quota exceeded")
	if _, _, err := s.Insert(ctx, movie(2, "B"), domain.MediaMovie); err == nil {
		t.Fatalf("expected persist error")
	}
	if _, err := s.Remove(ctx, 1, domain.MediaMovie); err == nil {
		t.Fatalf("expected persist error on remove")
	}
	if err := s.Clear(ctx); err == nil {
		t.Fatalf("expected persist error on clear")
	}
	if s.Len() != 1 || !s.Contains(1, domain.MediaMovie) {
		t.Fatalf("failed mutations must not change the collection: %v", titles(s.List()))
	}
}

func TestWatchlist_ReturnedEntriesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	m := movie(1, "A")
	_, _, _ = s.Insert(ctx, m, domain.MediaMovie)
	m.GenreIDs[0] = 99

	list := s.List()
	list[0].GenreIDs[0] = 77
	list[0].Title = "mutated"

	e, _ := s.Get(1, domain.MediaMovie)
	if e.Title != "A" || e.GenreIDs[0] != 18 {
		t.Fatalf("store leaked internal state: %+v", e)
	}
}

func TestWatchlist_RejectsInvalidKey(t *testing.T) {
	ctx := context.Background()
	s := newTestWatchlist(newMemBlobs())

	if _, _, err := s.Insert(ctx, movie(1, "A"), domain.MediaType("person")); !errors.Is(err, domain.ErrInvalidMediaType) {
		t.Fatalf("expected ErrInvalidMediaType, got %v", err)
	}
	if _, _, err := s.Insert(ctx, movie(0, "A"), domain.MediaMovie); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("invalid inserts must not change the collection")
	}
}

func TestWatchlist_PublishesMutations(t *testing.T) {
	ctx := context.Background()
	bus := &recordingBus{}
	s := NewWatchlistStore(zerolog.Nop(), newMemBlobs(), WatchlistOptions{Bus: bus, Now: stepClock()})

	_, _, _ = s.Insert(ctx, movie(1, "A"), domain.MediaMovie)
	_, _, _ = s.Insert(ctx, movie(1, "A"), domain.MediaMovie)
	_, _ = s.Remove(ctx, 1, domain.MediaMovie)
	_ = s.Clear(ctx)

	want := []string{"watchlist.added", "watchlist.removed", "watchlist.cleared"}
	if len(bus.topics) != len(want) {
		t.Fatalf("topics: want %v, got %v", want, bus.topics)
	}
	for i := range want {
		if bus.topics[i] != want[i] {
			t.Fatalf("topics: want %v, got %v", want, bus.topics)
		}
	}
}

type recordingBus struct {
	topics []string
}

func (b *recordingBus) Publish(topic string, payload []byte) {
	b.topics = append(b.topics, topic)
}

func (b *recordingBus) Subscribe() (<-chan ports.Event, func()) {
	ch := make(chan ports.Event)
	close(ch)
	return ch, func() {}
}

func titles(entries []domain.WatchlistEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}
