package source

import (
	"context"
	"errors"

	"github.com/rshade/accountdesk/internal/account"
)

// ErrNotConfigured is returned by Funcs whose function field is nil.
var ErrNotConfigured = errors.New("source operation not configured")

// Fetcher loads the complete account set.
type Fetcher interface {
	// FetchAll returns every account visible to the caller.
	FetchAll(ctx context.Context) ([]account.Account, error)
	// Refresh forces a reload, bypassing any cached snapshot.
	Refresh(ctx context.Context) ([]account.Account, error)
}

// Updater applies the bulk update to a batch of account ids.
type Updater interface {
	// UpdateMany updates all ids in one call and returns one marker-prefixed
	// message per processed record. An error means the whole call failed.
	UpdateMany(ctx context.Context, ids []string) ([]string, error)
}

// Source is a backend that can both fetch and update accounts.
type Source interface {
	Fetcher
	Updater
}

// Funcs adapts plain functions to Source. A nil RefreshFunc falls back to FetchFunc.
type Funcs struct {
	FetchFunc   func(ctx context.Context) ([]account.Account, error)
	RefreshFunc func(ctx context.Context) ([]account.Account, error)
	UpdateFunc  func(ctx context.Context, ids []string) ([]string, error)
}

// FetchAll implements Fetcher.
func (f Funcs) FetchAll(ctx context.Context) ([]account.Account, error) {
	if f.FetchFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.FetchFunc(ctx)
}

// Refresh implements Fetcher.
func (f Funcs) Refresh(ctx context.Context) ([]account.Account, error) {
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx)
	}
	return f.FetchAll(ctx)
}

// UpdateMany implements Updater.
func (f Funcs) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	if f.UpdateFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.UpdateFunc(ctx, ids)
}

// Compose joins a Fetcher and an Updater into a Source.
func Compose(f Fetcher, u Updater) Source {
	return composed{Fetcher: f, Updater: u}
}

type composed struct {
	Fetcher
	Updater
}
