package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
)

// Store decorates a source.Source with a TTL snapshot cache.
// Thread-safe: fetches may run on background goroutines.
type Store struct {
	backend source.Source
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	entry *Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps backend. A ttl of zero disables caching; every call goes through.
func New(backend source.Source, ttl time.Duration, opts ...Option) *Store {
	s := &Store{backend: backend, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll serves the cached snapshot while fresh, otherwise reloads.
func (s *Store) FetchAll(ctx context.Context) ([]account.Account, error) {
	if s.ttl <= 0 {
		return s.backend.FetchAll(ctx)
	}

	s.mu.Lock()
	entry := s.entry
	s.mu.Unlock()

	now := s.now()
	if entry != nil && !entry.IsExpired(now) {
		logging.FromContext(ctx).Debug().Ctx(ctx).
			Str("component", "cache").
			Str("operation", "fetch_all").
			Dur("age", entry.Age(now)).
			Int("records", len(entry.Records)).
			Msg("serving cached snapshot")
		return account.CloneAll(entry.Records), nil
	}

	recs, err := s.backend.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.store(recs)
	return recs, nil
}

// Refresh always reloads from the backend and replaces the snapshot.
func (s *Store) Refresh(ctx context.Context) ([]account.Account, error) {
	recs, err := s.backend.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.store(recs)
	}
	return recs, nil
}

// UpdateMany invalidates the snapshot and delegates to the backend.
func (s *Store) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	s.Invalidate()
	return s.backend.UpdateMany(ctx, ids)
}

// Invalidate drops the cached snapshot.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
}

// Cached reports whether a fresh snapshot is held.
func (s *Store) Cached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry != nil && !s.entry.IsExpired(s.now())
}

func (s *Store) store(recs []account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = NewEntry(recs, s.now(), s.ttl)
}
