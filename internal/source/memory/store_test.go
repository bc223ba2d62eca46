package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/accountdesk/internal/account"
)

func openFixture(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join("testdata", "accounts.yaml"), opts...)
	require.NoError(t, err)
	return s
}

func TestOpen(t *testing.T) {
	s := openFixture(t)

	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "Acme Corp", recs[0].Name)
	assert.Equal(t, "005A", recs[0].OwnerID)
	assert.Equal(t, account.Level1, recs[0].Level)
	assert.Equal(t, "Zoe", recs[0].LastModifiedByName())
	assert.Nil(t, recs[3].LastModifiedBy)
	assert.Empty(t, recs[3].Phone)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
}

func TestParseFixture_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "missing id", data: "accounts:\n  - Name: x\n", wantErr: ErrMissingID},
		{name: "duplicate id", data: "accounts:\n  - Id: a\n  - Id: a\n", wantErr: ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseFixture([]byte("accounts: [unclosed"))
	assert.Error(t, err)
}

func TestUpdateMany(t *testing.T) {
	s := openFixture(t, WithActor("Desk User"), WithBatchSize(2))
	ctx := context.Background()

	msgs, err := s.UpdateMany(ctx, []string{"001", "002", "003", "999", "004"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"✅ 001 updated",
		"❌ 002 failed: locked",
		"❌ 003 failed: already at Level 2",
		"❌ 999 failed: account not found",
		"✅ 004 updated",
	}, msgs)

	recs, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.Level2, recs[0].Level)
	assert.Equal(t, "Desk User", recs[0].LastModifiedByName())
	assert.Equal(t, account.Level1, recs[1].Level)
	assert.Equal(t, "Ana", recs[2].LastModifiedByName())
	assert.Equal(t, account.Level2, recs[3].Level)
}

func TestUpdateMany_Cancelled(t *testing.T) {
	s := openFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.UpdateMany(ctx, []string{"001"})
	require.ErrorIs(t, err, context.Canceled)

	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account.Level1, recs[0].Level)
}

// cancelAfterContext reports cancellation once Err has been asked n times.
type cancelAfterContext struct {
	context.Context
	calls int
	n     int
}

func (c *cancelAfterContext) Err() error {
	c.calls++
	if c.calls > c.n {
		return context.Canceled
	}
	return nil
}

func TestUpdateMany_StopsMidway(t *testing.T) {
	s := openFixture(t, WithBatchSize(1))
	ctx := &cancelAfterContext{Context: context.Background(), n: 1}

	msgs, err := s.UpdateMany(ctx, []string{"001", "004"})
	require.NoError(t, err, "a committed batch must not be reported as a failed call")
	assert.Equal(t, []string{
		"✅ 001 updated",
		"❌ 004 failed: context canceled",
	}, msgs)

	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account.Level2, recs[0].Level)
	assert.Equal(t, account.Level1, recs[3].Level)
}

func TestFetchAll_ReturnsCopies(t *testing.T) {
	s := openFixture(t)
	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	recs[0].LastModifiedBy.Name = "mutated"

	again, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zoe", again[0].LastModifiedByName())
}

func TestSetLockedAndSnapshot(t *testing.T) {
	s := openFixture(t)

	assert.True(t, s.SetLocked("002", false))
	assert.False(t, s.SetLocked("missing", true))

	msgs, err := s.UpdateMany(context.Background(), []string{"002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"✅ 002 updated"}, msgs)

	data, err := s.Snapshot().Marshal()
	require.NoError(t, err)
	fx, err := ParseFixture(data)
	require.NoError(t, err)
	assert.Len(t, fx.Accounts, 4)
	assert.Equal(t, account.Level2, fx.Accounts[1].Level)
}

func TestSample(t *testing.T) {
	s, err := Sample(WithActor("Demo"))
	require.NoError(t, err)

	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 14)

	levels := map[account.Level]int{}
	for _, r := range recs {
		levels[r.Level]++
	}
	assert.Equal(t, 11, levels[account.Level1])
	assert.Equal(t, 3, levels[account.Level2])

	msgs, err := s.UpdateMany(context.Background(), []string{"001", "002"})
	require.NoError(t, err)
	assert.Equal(t, account.SeveritySuccess, account.SeverityOf(msgs[0]))
	assert.Equal(t, account.SeverityError, account.SeverityOf(msgs[1]), "002 is locked")
}
