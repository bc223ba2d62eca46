package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/accountdesk/internal/source"
)

// Service and method names.
const (
	ServiceName          = "accountdesk.v1.AccountService"
	MethodListAccounts   = "/" + ServiceName + "/ListAccounts"
	MethodUpdateAccounts = "/" + ServiceName + "/UpdateAccounts"
)

// MaxUpdateIDs bounds one UpdateAccounts call.
const MaxUpdateIDs = 1000

// AccountServer is the server API of the account service.
type AccountServer interface {
	ListAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the account service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListAccounts", Handler: listAccountsHandler},
		{MethodName: "UpdateAccounts", Handler: updateAccountsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accountdesk/v1/account_service",
}

func listAccountsHandler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServer).ListAccounts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListAccounts}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServer).ListAccounts(ctx, req.(*structpb.Struct))
	})
}

func updateAccountsHandler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServer).UpdateAccounts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateAccounts}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServer).UpdateAccounts(ctx, req.(*structpb.Struct))
	})
}

// Server adapts a source.Source to AccountServer.
type Server struct {
	src source.Source
}

var _ AccountServer = (*Server)(nil)

// NewServer creates a Server for src.
func NewServer(src source.Source) *Server {
	return &Server{src: src}
}

// Register creates a grpc.Server with the trace interceptor and registers src on it.
func Register(src source.Source, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(ServerTraceInterceptor())}, opts...)
	gs := grpc.NewServer(opts...)
	gs.RegisterService(&ServiceDesc, NewServer(src))
	return gs
}

// ListAccounts implements AccountServer.
func (s *Server) ListAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fetch := s.src.FetchAll
	if req.GetFields()[keyRefresh].GetBoolValue() {
		fetch = s.src.Refresh
	}
	recs, err := fetch(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "loading accounts: %v", err)
	}
	return encodeAccounts(recs), nil
}

// UpdateAccounts implements AccountServer.
func (s *Server) UpdateAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ids, err := decodeStrings(req, keyIDs)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if len(ids) == 0 {
		return nil, status.Error(codes.InvalidArgument, "ids must not be empty")
	}
	if len(ids) > MaxUpdateIDs {
		return nil, status.Errorf(codes.ResourceExhausted, "too many ids: %d", len(ids))
	}

	msgs, err := s.src.UpdateMany(ctx, ids)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "updating accounts: %v", err)
	}
	return encodeStrings(keyMessages, msgs), nil
}
