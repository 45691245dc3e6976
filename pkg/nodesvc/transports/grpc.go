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

	pb "github.com/world-in-progress/yggdrasilsvc/pb/nodesvc"
	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

type grpcServer struct {
	createNode grpctransport.Handler
}

func (s *grpcServer) CreateNode(ctx context.Context, req *pb.CreateNodeRequest) (rep *pb.CreateNodeReply, err error) {
	_, rp, err := s.createNode.ServeGRPC(ctx, req)
	if err != nil {
		return nil, shared.GRPCEncodeError(err)
	}
	rep = rp.(*pb.CreateNodeReply)
	return rep, nil
}

// MakeGRPCServer makes a set of endpoints available as a gRPC server.
func MakeGRPCServer(endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (req pb.NodesvcServer) {
	// A global Zipkin tracing service is used together with the Go kit gRPC
	// Interceptor, so the operation name is the gRPC method path.
	zipkinServer := zipkin.GRPCServerTrace(zipkinTracer)

	options := []grpctransport.ServerOption{
		grpctransport.ServerErrorLogger(logger),
		zipkinServer,
	}

	return &grpcServer{
		createNode: grpctransport.NewServer(
			endpoints.CreateNodeEndpoint,
			decodeGRPCCreateNodeRequest,
			encodeGRPCCreateNodeResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(otTracer, "CreateNode", logger)))...,
		),
	}
}

// decodeGRPCCreateNodeRequest is a transport/grpc.DecodeRequestFunc that converts a
// gRPC request to a user-domain request. Primarily useful in a server.
// proto3 strings are always present, so an unset name is the empty name.
func decodeGRPCCreateNodeRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.CreateNodeRequest)
	name := req.Name
	return endpoints.CreateNodeRequest{Name: &name}, nil
}

// encodeGRPCCreateNodeResponse is a transport/grpc.EncodeResponseFunc that converts a
// user-domain response to a gRPC reply. Primarily useful in a server.
func encodeGRPCCreateNodeResponse(_ context.Context, grpcReply interface{}) (res interface{}, err error) {
	reply := grpcReply.(endpoints.CreateNodeResponse)
	return &pb.CreateNodeReply{Id: reply.ID}, nil
}

// NewGRPCClient returns a NodesvcService backed by a gRPC server at the other end
// of the conn. The caller is responsible for constructing the conn, and
// eventually closing the underlying transport. We bake-in certain middlewares,
// implementing the client library pattern.
func NewGRPCClient(conn *grpc.ClientConn, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) service.NodesvcService {
	limiter := shared.NewLimiter()

	zipkinClient := zipkin.GRPCClientTrace(zipkinTracer)

	// global client middlewares
	options := []grpctransport.ClientOption{
		zipkinClient,
	}

	var createNodeEndpoint endpoint.Endpoint
	{
		createNodeEndpoint = grpctransport.NewClient(
			conn,
			"pb.Nodesvc",
			"CreateNode",
			encodeGRPCCreateNodeRequest,
			decodeGRPCCreateNodeResponse,
			pb.CreateNodeReply{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(otTracer, logger)))...,
		).Endpoint()
		createNodeEndpoint = opentracing.TraceClient(otTracer, "CreateNode")(createNodeEndpoint)
		createNodeEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "CreateNode",
			Timeout: 30 * time.Second,
		}))(createNodeEndpoint)
		createNodeEndpoint = limiter(createNodeEndpoint)
	}

	return endpoints.Endpoints{
		CreateNodeEndpoint: createNodeEndpoint,
	}
}

// encodeGRPCCreateNodeRequest is a transport/grpc.EncodeRequestFunc that converts a
// user-domain CreateNode request to a gRPC CreateNode request. Primarily useful in a client.
func encodeGRPCCreateNodeRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(endpoints.CreateNodeRequest)
	var name string
	if req.Name != nil {
		name = *req.Name
	}
	return &pb.CreateNodeRequest{Name: name}, nil
}

// decodeGRPCCreateNodeResponse is a transport/grpc.DecodeResponseFunc that converts a
// gRPC CreateNode reply to a user-domain CreateNode response. Primarily useful in a client.
func decodeGRPCCreateNodeResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.CreateNodeReply)
	return endpoints.CreateNodeResponse{ID: reply.Id}, nil
}
