package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/source/memory"
)

func newMock(t *testing.T, opts ...Option) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, opts...), mock
}

func TestFetchAll(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "owner_id", "level", "last_modified_by"}).
			AddRow("001", "Acme", "555-0100", "005A", "Level 1", "Zoe").
			AddRow("002", "Globex", "", "", "Level 2", nil))

	recs, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, account.Account{
		ID: "001", Name: "Acme", Phone: "555-0100", OwnerID: "005A",
		Level: account.Level1, LastModifiedBy: &account.User{Name: "Zoe"},
	}, recs[0])
	assert.Nil(t, recs[1].LastModifiedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_QueryError(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).WillReturnError(errors.New("connection refused"))

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdateMany(t *testing.T) {
	s, mock := newMock(t, WithActor("Desk User"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs("001").
		WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}).AddRow("Level 1", false))
	mock.ExpectExec(regexp.QuoteMeta(promoteSQL)).WithArgs("Level 2", "Desk User", "001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs("002").
		WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}).AddRow("Level 1", true))
	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs("003").
		WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}))
	mock.ExpectCommit()

	msgs, err := s.UpdateMany(context.Background(), []string{"001", "002", "003"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"✅ 001 updated",
		"❌ 002 failed: locked",
		"❌ 003 failed: account not found",
	}, msgs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMany_BatchesShareTransactions(t *testing.T) {
	s, mock := newMock(t, WithBatchSize(1))

	for _, id := range []string{"001", "002"} {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}).AddRow("Level 2", false))
		mock.ExpectCommit()
	}

	msgs, err := s.UpdateMany(context.Background(), []string{"001", "002"})
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMany_LaterBatchFails(t *testing.T) {
	s, mock := newMock(t, WithBatchSize(1), WithActor("Desk User"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs("001").
		WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}).AddRow("Level 1", false))
	mock.ExpectExec(regexp.QuoteMeta(promoteSQL)).WithArgs("Level 2", "Desk User", "001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin().WillReturnError(errors.New("connection reset"))

	msgs, err := s.UpdateMany(context.Background(), []string{"001", "002", "003"})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "✅ 001 updated", msgs[0])
	for i, id := range []string{"002", "003"} {
		assert.True(t, strings.HasPrefix(msgs[i+1], "❌ "+id+" failed: "), msgs[i+1])
		assert.Contains(t, msgs[i+1], "connection reset")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMany_DatabaseErrorRollsBack(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).WithArgs("001").
		WillReturnRows(sqlmock.NewRows([]string{"level", "locked"}).AddRow("Level 1", false))
	mock.ExpectExec(regexp.QuoteMeta(promoteSQL)).WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := s.UpdateMany(context.Background(), []string{"001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Seed(ctx, []memory.Record{
		{Account: account.Account{ID: "001", Name: "Acme", Level: account.Level1}},
		{Account: account.Account{ID: "002", Name: "Globex", Level: account.Level1}, Locked: true},
	}))

	msgs, err := s.UpdateMany(ctx, []string{"001", "002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"✅ 001 updated", "❌ 002 failed: locked"}, msgs)

	recs, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, account.Level2, recs[0].Level)
	assert.Equal(t, memory.DefaultActor, recs[0].LastModifiedByName())
	assert.Equal(t, account.Level1, recs[1].Level)
}
