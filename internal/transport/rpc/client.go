package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/source"
)

// Client is a source.Source backed by the gRPC account service.
type Client struct {
	conn grpc.ClientConnInterface
}

var _ source.Source = (*Client)(nil)

// NewClient wraps an existing connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial opens a plaintext connection to address.
func Dial(address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(TraceInterceptor()),
	}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", address, err)
	}
	return conn, nil
}

// FetchAll implements source.Fetcher.
func (c *Client) FetchAll(ctx context.Context) ([]account.Account, error) {
	return c.list(ctx, false)
}

// Refresh implements source.Fetcher.
func (c *Client) Refresh(ctx context.Context) ([]account.Account, error) {
	return c.list(ctx, true)
}

func (c *Client) list(ctx context.Context, refresh bool) ([]account.Account, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{keyRefresh: structpb.NewBoolValue(refresh)}}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodListAccounts, in, out); err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return decodeAccounts(out)
}

// UpdateMany implements source.Updater.
func (c *Client) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodUpdateAccounts, encodeStrings(keyIDs, ids), out); err != nil {
		return nil, fmt.Errorf("UpdateAccounts: %w", err)
	}
	return decodeStrings(out, keyMessages)
}
