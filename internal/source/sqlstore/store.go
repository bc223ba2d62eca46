package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "github.com/mattn/go-sqlite3"    // registers "sqlite3"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/source/batch"
	"github.com/rshade/accountdesk/internal/source/memory"
)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// ErrUnsupportedDriver is returned by Open for drivers other than mysql and sqlite3.
var ErrUnsupportedDriver = errors.New("unsupported sql driver")

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS accounts (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(64) NOT NULL DEFAULT '',
	owner_id VARCHAR(64) NOT NULL DEFAULT '',
	level VARCHAR(32) NOT NULL DEFAULT '',
	last_modified_by VARCHAR(255) NULL,
	locked BOOLEAN NOT NULL DEFAULT FALSE
)`

	selectAllSQL = `SELECT id, name, phone, owner_id, level, last_modified_by FROM accounts ORDER BY id`
	selectOneSQL = `SELECT level, locked FROM accounts WHERE id = ?`
	promoteSQL   = `UPDATE accounts SET level = ?, last_modified_by = ? WHERE id = ?`
	insertSQL    = `INSERT INTO accounts (id, name, phone, owner_id, level, last_modified_by, locked) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// Store is a source.Source over an accounts table.
type Store struct {
	db        *sql.DB
	actor     string
	batchSize int
}

var _ source.Source = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithActor sets the name written to last_modified_by on promotion.
func WithActor(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.actor = name
		}
	}
}

// WithBatchSize sets how many ids share one transaction in UpdateMany.
// Non-positive values keep the default.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New wraps an open database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, actor: memory.DefaultActor, batchSize: batch.DefaultBatchSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects with driver and dsn, pings, and wraps the handle.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	if driver != DriverMySQL && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// each sqlite connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(10 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}

	return New(db, opts...), nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the accounts table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}
	return nil
}

// Seed inserts records in one transaction.
func (s *Store) Seed(ctx context.Context, records []memory.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		var modifiedBy sql.NullString
		if rec.LastModifiedBy != nil {
			modifiedBy = sql.NullString{String: rec.LastModifiedBy.Name, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertSQL,
			rec.ID, rec.Name, rec.Phone, rec.OwnerID, string(rec.Level), modifiedBy, rec.Locked,
		); err != nil {
			return fmt.Errorf("seeding account %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// FetchAll reads every account ordered by id.
func (s *Store) FetchAll(ctx context.Context) ([]account.Account, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var out []account.Account
	for rows.Next() {
		var (
			acc        account.Account
			level      string
			modifiedBy sql.NullString
		)
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Phone, &acc.OwnerID, &level, &modifiedBy); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		acc.Level = account.Level(level)
		if modifiedBy.Valid {
			acc.LastModifiedBy = &account.User{Name: modifiedBy.String}
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return out, nil
}

// Refresh is FetchAll; every read goes to the database.
func (s *Store) Refresh(ctx context.Context) ([]account.Account, error) {
	return s.FetchAll(ctx)
}

// UpdateMany promotes eligible accounts, one transaction per batch.
// Ineligible ids produce failure outcomes. A database error fails the call
// only when no batch has committed; later failures mark the remaining ids.
func (s *Store) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	proc, err := batch.NewProcessor[string](s.batchSize)
	if err != nil {
		return nil, err
	}
	proc.WithProgressCallback(batch.LogProgress(ctx, "sqlstore"))

	messages := make([]string, 0, len(ids))
	err = proc.Process(ctx, ids, func(ctx context.Context, chunk []string, _ int) error {
		out, err := s.promoteBatch(ctx, chunk)
		if err != nil {
			return err
		}
		messages = append(messages, out...)
		return nil
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "sqlstore").
			Str("operation", "update_many").
			Int("committed", len(messages)).
			Int("requested", len(ids)).
			Err(err).
			Msg("update stopped before the last batch")
		return source.FinishPartial(ids, messages, err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "sqlstore").
		Str("operation", "update_many").
		Int("requested", len(ids)).
		Msg("accounts processed")
	return messages, nil
}

func (s *Store) promoteBatch(ctx context.Context, ids []string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		reason, err := s.promoteOne(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, source.OutcomeMessage(id, reason))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return out, nil
}

// promoteOne returns the rejection reason for id, or a database error.
func (s *Store) promoteOne(ctx context.Context, tx *sql.Tx, id string) (reason, err error) {
	var (
		level  string
		locked bool
	)
	err = tx.QueryRowContext(ctx, selectOneSQL, id).Scan(&level, &locked)
	if errors.Is(err, sql.ErrNoRows) {
		return source.ErrAccountNotFound, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", id, err)
	}

	acc := account.Account{ID: id, Level: account.Level(level)}
	if reason := source.CheckPromotable(acc, locked); reason != nil {
		return reason, nil
	}

	if _, err := tx.ExecContext(ctx, promoteSQL, string(account.Level2), s.actor, id); err != nil {
		return nil, fmt.Errorf("promoting account %s: %w", id, err)
	}
	return nil, nil
}
