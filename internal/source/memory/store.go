package memory

import (
	"context"
	"sync"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/source/batch"
)

// DefaultActor is the LastModifiedBy name stamped on promoted records.
const DefaultActor = "Account Desk"

// Store is a mutex-guarded in-memory source.Source.
type Store struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int

	actor     string
	batchSize int
}

var _ source.Source = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithActor sets the name stamped into LastModifiedBy on promotion.
func WithActor(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.actor = name
		}
	}
}

// WithBatchSize sets how many ids are applied per batch in UpdateMany.
// Non-positive values keep the default.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New creates a store holding copies of records.
func New(records []Record, opts ...Option) *Store {
	s := &Store{
		actor:     DefaultActor,
		batchSize: batch.DefaultBatchSize,
		index:     make(map[string]int, len(records)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, rec := range records {
		s.put(rec)
	}
	return s
}

// FromFixture creates a store seeded from fx.
func FromFixture(fx *Fixture, opts ...Option) *Store {
	return New(fx.Accounts, opts...)
}

// Open loads the fixture at path into a new store.
func Open(path string, opts ...Option) (*Store, error) {
	fx, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return FromFixture(fx, opts...), nil
}

func (s *Store) put(rec Record) {
	rec.Account = rec.Account.Clone()
	if i, ok := s.index[rec.ID]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
}

// FetchAll returns a copy of every account in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]account.Account, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Account.Clone()
	}
	return out, nil
}

// Refresh is FetchAll; the store has no snapshot to bypass.
func (s *Store) Refresh(ctx context.Context) ([]account.Account, error) {
	return s.FetchAll(ctx)
}

// UpdateMany promotes each eligible Level 1 account to Level 2 and returns
// one outcome per id in input order. Ineligible ids produce failure outcomes
// without failing the call. If processing stops after some batches were
// applied, the ids not reached get failure outcomes instead of an error.
func (s *Store) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	proc, err := batch.NewProcessor[string](s.batchSize)
	if err != nil {
		return nil, err
	}
	proc.WithProgressCallback(batch.LogProgress(ctx, "memory"))

	messages := make([]string, 0, len(ids))
	err = proc.Process(ctx, ids, func(_ context.Context, chunk []string, _ int) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, id := range chunk {
			messages = append(messages, source.OutcomeMessage(id, s.promote(id)))
		}
		return nil
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "memory").
			Str("operation", "update_many").
			Int("committed", len(messages)).
			Int("requested", len(ids)).
			Err(err).
			Msg("update stopped before the last batch")
		return source.FinishPartial(ids, messages, err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "memory").
		Str("operation", "update_many").
		Int("requested", len(ids)).
		Msg("accounts processed")
	return messages, nil
}

// promote must be called with s.mu held.
func (s *Store) promote(id string) error {
	i, ok := s.index[id]
	if !ok {
		return source.ErrAccountNotFound
	}
	rec := s.records[i]
	if err := source.CheckPromotable(rec.Account, rec.Locked); err != nil {
		return err
	}
	rec.Account = source.Promote(rec.Account, s.actor)
	s.records[i] = rec
	return nil
}

// SetLocked flips the lock flag of id. It reports whether id exists.
func (s *Store) SetLocked(id string, locked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if ok {
		s.records[i].Locked = locked
	}
	return ok
}

// Snapshot returns the current state as a fixture.
func (s *Store) Snapshot() *Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fx := &Fixture{Accounts: make([]Record, len(s.records))}
	for i, rec := range s.records {
		rec.Account = rec.Account.Clone()
		fx.Accounts[i] = rec
	}
	return fx
}
