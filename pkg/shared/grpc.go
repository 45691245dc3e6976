package shared

import (
	kitgrpc "github.com/go-kit/kit/transport/grpc"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/grpc-ecosystem/grpc-opentracing/go/otgrpc"
	stdopentracing "github.com/opentracing/opentracing-go"
	"google.golang.org/grpc"
)

// NewGRPCServer returns a gRPC server with the interceptor chain every
// service uses: panic recovery, the Go kit method interceptor and
// OpenTracing spans.
func NewGRPCServer(otTracer stdopentracing.Tracer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc_middleware.WithUnaryServerChain(
		grpc_recovery.UnaryServerInterceptor(),
		kitgrpc.Interceptor,
		otgrpc.OpenTracingServerInterceptor(otTracer),
	))
	return grpc.NewServer(opts...)
}

// ClientDialOptions are the dial options used to reach a backend service.
func ClientDialOptions(otTracer stdopentracing.Tracer) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithInsecure(),
		grpc.WithUnaryInterceptor(otgrpc.OpenTracingClientInterceptor(otTracer)),
	}
}
