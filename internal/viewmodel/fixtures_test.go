package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/source"
)

func accounts(level1, level2 int) []account.Account {
	var recs []account.Account
	for i := range level1 {
		recs = append(recs, account.Account{
			ID: fmt.Sprintf("1%02d", i), Name: fmt.Sprintf("alpha %02d", i), Level: account.Level1,
		})
	}
	for i := range level2 {
		recs = append(recs, account.Account{
			ID: fmt.Sprintf("2%02d", i), Name: fmt.Sprintf("beta %02d", i), Level: account.Level2,
		})
	}
	return recs
}

// fakeSource counts calls and serves canned responses.
type fakeSource struct {
	mu sync.Mutex

	records    []account.Account
	fetchErr   error
	refreshErr error

	messages  []string
	updateErr error
	onUpdate  func(ids []string)

	fetchCalls   int
	refreshCalls int
	updateCalls  int
	lastIDs      []string
}

var _ source.Source = (*fakeSource)(nil)

func (f *fakeSource) FetchAll(context.Context) ([]account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return account.CloneAll(f.records), nil
}

func (f *fakeSource) Refresh(context.Context) ([]account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return account.CloneAll(f.records), nil
}

func (f *fakeSource) UpdateMany(_ context.Context, ids []string) ([]string, error) {
	if f.onUpdate != nil {
		f.onUpdate(ids)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastIDs = append([]string(nil), ids...)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.messages, nil
}
