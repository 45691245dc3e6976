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

	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

// Endpoints collects all of the endpoints that compose the scenesvc service. It's
// meant to be used as a helper struct, to collect all of the endpoints into a
// single parameter.
type Endpoints struct {
	AddEndpoint endpoint.Endpoint
}

// New return a new instance of the endpoint that wraps the provided service.
func New(svc service.ScenesvcService, logger log.Logger, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) (ep Endpoints) {
	var addEndpoint endpoint.Endpoint
	{
		method := "add"
		addEndpoint = MakeAddEndpoint(svc)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(addEndpoint)
		addEndpoint = shared.NewLimiter()(addEndpoint)
		addEndpoint = ValidationMiddleware()(addEndpoint)
		addEndpoint = opentracing.TraceServer(otTracer, method)(addEndpoint)
		addEndpoint = zipkin.TraceEndpoint(zipkinTracer, method)(addEndpoint)
		addEndpoint = LoggingMiddleware(log.With(logger, "method", method))(addEndpoint)
		ep.AddEndpoint = addEndpoint
	}

	return ep
}

// MakeAddEndpoint returns an endpoint that invokes Add on the service.
// Primarily useful in a server.
func MakeAddEndpoint(svc service.ScenesvcService) (ep endpoint.Endpoint) {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(AddRequest)
		if err := req.validate(); err != nil {
			return AddResponse{}, err
		}
		result, err := svc.Add(ctx, *req.A, *req.B)
		return AddResponse{Result: result}, err
	}
}

// Add implements the service interface, so Endpoints may be used as a service.
// This is primarily useful in the context of a client library.
func (e Endpoints) Add(ctx context.Context, a float64, b float64) (result float64, err error) {
	resp, err := e.AddEndpoint(ctx, AddRequest{A: &a, B: &b})
	if err != nil {
		return
	}
	response := resp.(AddResponse)
	return response.Result, nil
}
