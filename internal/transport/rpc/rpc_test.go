package rpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/source/memory"
)

func startServer(t *testing.T, src source.Source) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := Register(src)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestRoundTrip(t *testing.T) {
	store := memory.New([]memory.Record{
		{Account: account.Account{ID: "001", Name: "Acme", Phone: "555", OwnerID: "005A", Level: account.Level1,
			LastModifiedBy: &account.User{Name: "Zoe"}}},
		{Account: account.Account{ID: "002", Name: "Globex", Level: account.Level2}},
	})
	c := startServer(t, store)
	ctx := logging.ContextWithTraceID(context.Background(), "01TESTTRACE")

	recs, err := c.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, account.Account{
		ID: "001", Name: "Acme", Phone: "555", OwnerID: "005A", Level: account.Level1,
		LastModifiedBy: &account.User{Name: "Zoe"},
	}, recs[0])
	assert.Nil(t, recs[1].LastModifiedBy)

	msgs, err := c.UpdateMany(ctx, []string{"001", "002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"✅ 001 updated", "❌ 002 failed: already at Level 2"}, msgs)

	recs, err = c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.Level2, recs[0].Level)
	assert.Equal(t, memory.DefaultActor, recs[0].LastModifiedByName())
}

func TestUpdateAccounts_EmptyIDs(t *testing.T) {
	c := startServer(t, memory.New(nil))

	_, err := c.UpdateMany(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(errors.Unwrap(err)))
}

func TestListAccounts_BackendFailure(t *testing.T) {
	c := startServer(t, source.Funcs{FetchFunc: func(context.Context) ([]account.Account, error) {
		return nil, errors.New("db down")
	}})

	_, err := c.FetchAll(context.Background())

	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
}

func TestDecodeStrings_Malformed(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"ids": []any{"a", 1.0}})
	require.NoError(t, err)

	_, err = decodeStrings(s, keyIDs)
	assert.ErrorIs(t, err, errMalformed)

	_, err = decodeStrings(&structpb.Struct{}, keyIDs)
	assert.ErrorIs(t, err, errMalformed)
}

func TestDecodeAccounts_MissingID(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"accounts": []any{map[string]any{"Name": "x"}}})
	require.NoError(t, err)

	_, err = decodeAccounts(s)
	assert.ErrorIs(t, err, errMalformed)
}
