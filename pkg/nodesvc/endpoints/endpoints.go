package endpoints

import (
	"context"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"

	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

// Endpoints collects all of the endpoints that compose the nodesvc service. It's
// meant to be used as a helper struct, to collect all of the endpoints into a
// single parameter.
type Endpoints struct {
	CreateNodeEndpoint endpoint.Endpoint
}

// New return a new instance of the endpoint that wraps the provided service.
func New(svc service.NodesvcService, logger log.Logger, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) (ep Endpoints) {
	var createNodeEndpoint endpoint.Endpoint
	{
		method := "createNode"
		createNodeEndpoint = MakeCreateNodeEndpoint(svc)
		createNodeEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(createNodeEndpoint)
		createNodeEndpoint = shared.NewLimiter()(createNodeEndpoint)
		createNodeEndpoint = ValidationMiddleware()(createNodeEndpoint)
		createNodeEndpoint = opentracing.TraceServer(otTracer, method)(createNodeEndpoint)
		createNodeEndpoint = zipkin.TraceEndpoint(zipkinTracer, method)(createNodeEndpoint)
		createNodeEndpoint = LoggingMiddleware(log.With(logger, "method", method))(createNodeEndpoint)
		ep.CreateNodeEndpoint = createNodeEndpoint
	}

	return ep
}

// MakeCreateNodeEndpoint returns an endpoint that invokes CreateNode on the service.
// Primarily useful in a server.
func MakeCreateNodeEndpoint(svc service.NodesvcService) (ep endpoint.Endpoint) {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(CreateNodeRequest)
		if err := req.validate(); err != nil {
			return CreateNodeResponse{}, err
		}
		id, err := svc.CreateNode(ctx, *req.Name)
		return CreateNodeResponse{ID: id}, err
	}
}

// CreateNode implements the service interface, so Endpoints may be used as a service.
// This is primarily useful in the context of a client library.
func (e Endpoints) CreateNode(ctx context.Context, name string) (id string, err error) {
	resp, err := e.CreateNodeEndpoint(ctx, CreateNodeRequest{Name: &name})
	if err != nil {
		return
	}
	response := resp.(CreateNodeResponse)
	return response.ID, nil
}
