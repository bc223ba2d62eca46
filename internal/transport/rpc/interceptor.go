package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/rshade/accountdesk/internal/logging"
)

// MetadataTraceID is the metadata key carrying the trace id.
const MetadataTraceID = "x-trace-id"

// TraceInterceptor propagates the context trace id to the server.
func TraceInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if tid := logging.TraceIDFromContext(ctx); tid != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, MetadataTraceID, tid)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ServerTraceInterceptor attaches the incoming trace id (or a new one) to the
// handler context and logs each call.
func ServerTraceInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		tid := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(MetadataTraceID); len(vals) > 0 {
				tid = vals[0]
			}
		}
		if tid == "" {
			tid = logging.NewTraceID()
		}
		ctx = logging.ContextWithTraceID(ctx, tid)

		resp, err := handler(ctx, req)

		ev := logging.FromContext(ctx).Debug()
		if err != nil {
			ev = logging.FromContext(ctx).Warn().Err(err)
		}
		ev.Ctx(ctx).
			Str("component", "rpc").
			Str("method", info.FullMethod).
			Msg("call")
		return resp, err
	}
}
