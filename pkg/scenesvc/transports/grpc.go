package transports

import (
	"context"
	"time"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	grpctransport "github.com/go-kit/kit/transport/grpc"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc"

	pb "github.com/world-in-progress/yggdrasilsvc/pb/scenesvc"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

type grpcServer struct {
	add grpctransport.Handler
}

func (s *grpcServer) Add(ctx context.Context, req *pb.AddRequest) (rep *pb.AddReply, err error) {
	_, rp, err := s.add.ServeGRPC(ctx, req)
	if err != nil {
		return nil, shared.GRPCEncodeError(err)
	}
	rep = rp.(*pb.AddReply)
	return rep, nil
}

// MakeGRPCServer makes a set of endpoints available as a gRPC server.
func MakeGRPCServer(endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (req pb.ScenesvcServer) {
	zipkinServer := zipkin.GRPCServerTrace(zipkinTracer)

	options := []grpctransport.ServerOption{
		grpctransport.ServerErrorLogger(logger),
		zipkinServer,
	}

	return &grpcServer{
		add: grpctransport.NewServer(
			endpoints.AddEndpoint,
			decodeGRPCAddRequest,
			encodeGRPCAddResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(otTracer, "Add", logger)))...,
		),
	}
}

// decodeGRPCAddRequest is a transport/grpc.DecodeRequestFunc that converts a
// gRPC request to a user-domain request. Primarily useful in a server.
func decodeGRPCAddRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.AddRequest)
	a, b := req.A, req.B
	return endpoints.AddRequest{A: &a, B: &b}, nil
}

// encodeGRPCAddResponse is a transport/grpc.EncodeResponseFunc that converts a
// user-domain response to a gRPC reply. Primarily useful in a server.
func encodeGRPCAddResponse(_ context.Context, grpcReply interface{}) (res interface{}, err error) {
	reply := grpcReply.(endpoints.AddResponse)
	return &pb.AddReply{Result: reply.Result}, nil
}

// NewGRPCClient returns a ScenesvcService backed by a gRPC server at the other end
// of the conn. The caller is responsible for constructing the conn, and
// eventually closing the underlying transport. We bake-in certain middlewares,
// implementing the client library pattern.
func NewGRPCClient(conn *grpc.ClientConn, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) service.ScenesvcService {
	limiter := shared.NewLimiter()

	zipkinClient := zipkin.GRPCClientTrace(zipkinTracer)

	// global client middlewares
	options := []grpctransport.ClientOption{
		zipkinClient,
	}

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = grpctransport.NewClient(
			conn,
			"pb.Scenesvc",
			"Add",
			encodeGRPCAddRequest,
			decodeGRPCAddResponse,
			pb.AddReply{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(otTracer, logger)))...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(otTracer, "Add")(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
		addEndpoint = limiter(addEndpoint)
	}

	return endpoints.Endpoints{
		AddEndpoint: addEndpoint,
	}
}

// encodeGRPCAddRequest is a transport/grpc.EncodeRequestFunc that converts a
// user-domain Add request to a gRPC Add request. Primarily useful in a client.
func encodeGRPCAddRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(endpoints.AddRequest)
	r := &pb.AddRequest{}
	if req.A != nil {
		r.A = *req.A
	}
	if req.B != nil {
		r.B = *req.B
	}
	return r, nil
}

// decodeGRPCAddResponse is a transport/grpc.DecodeResponseFunc that converts a
// gRPC Add reply to a user-domain Add response. Primarily useful in a client.
func decodeGRPCAddResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.AddReply)
	return endpoints.AddResponse{Result: reply.Result}, nil
}
