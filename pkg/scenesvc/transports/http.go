package transports

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
	"github.com/world-in-progress/yggdrasilsvc/pkg/validation"
)

// AddPath is the route of the Add method.
const AddPath = "/api/v0/add"

// NewHTTPHandler returns a handler that makes a set of endpoints available on
// predefined paths.
func NewHTTPHandler(endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	r := mux.NewRouter()
	MountHTTPRoutes(r, endpoints, otTracer, zipkinTracer, logger)
	r.Methods("GET").Path("/health").HandlerFunc(shared.HealthHandler)
	r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	return r
}

// MountHTTPRoutes registers the API routes on r. The router reuses it to
// serve the same API in front of remote instances.
func MountHTTPRoutes(r *mux.Router, endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) {
	// A global Zipkin tracing service is fed to each Go kit endpoint as a
	// ServerOption; the operation name will be the endpoint's http method.
	zipkinServer := zipkin.HTTPServerTrace(zipkinTracer)

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(shared.EncodeHTTPError),
		httptransport.ServerErrorLogger(logger),
		zipkinServer,
	}

	r.Methods("POST").Path(AddPath).Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPAddRequest,
		httptransport.EncodeJSONResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Add", logger)))...,
	))
}

// decodeHTTPAddRequest is a transport/http.DecodeRequestFunc that decodes a
// JSON-encoded request from the HTTP request body. Primarily useful in a server.
func decodeHTTPAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoints.AddRequest
	if err := validation.DecodeJSON(r.Body, &req); err != nil {
		return req, req.DecodeError(err)
	}
	return req, nil
}

// NewHTTPClient returns a ScenesvcService backed by an HTTP server living at the
// remote instance. We expect instance to come from a service discovery system,
// so likely of the form "host:port". We bake-in certain middlewares,
// implementing the client library pattern.
func NewHTTPClient(instance string, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (service.ScenesvcService, error) {
	u, err := shared.ParseInstance(instance)
	if err != nil {
		return nil, err
	}

	// A single ratelimiter limits the total outgoing QPS from this client to
	// all methods on the remote instance.
	limiter := shared.NewLimiter()

	zipkinClient := zipkin.HTTPClientTrace(zipkinTracer)

	// global client middlewares
	options := []httptransport.ClientOption{
		zipkinClient,
	}

	e := endpoints.Endpoints{}

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = httptransport.NewClient(
			"POST",
			shared.CopyURL(u, AddPath),
			shared.EncodeJSONRequest,
			decodeHTTPAddResponse,
			append(options, httptransport.ClientBefore(opentracing.ContextToHTTP(otTracer, logger)))...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(otTracer, "Add")(addEndpoint)
		addEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Add")(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
		addEndpoint = limiter(addEndpoint)
		addEndpoint = endpoints.ValidationMiddleware()(addEndpoint)
		e.AddEndpoint = addEndpoint
	}

	// Returning the endpoint.Set as a service.Service relies on the
	// endpoint.Set implementing the Service methods.
	return e, nil
}

// decodeHTTPAddResponse is a transport/http.DecodeResponseFunc that decodes a
// JSON-encoded response from the HTTP response body. If the response has a
// non-200 status code, we will interpret that as an error and attempt to decode
// the specific error message from the response body. Primarily useful in a client.
func decodeHTTPAddResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		return nil, shared.JSONErrorDecoder(r)
	}
	var resp endpoints.AddResponse
	err := json.NewDecoder(r.Body).Decode(&resp)
	return resp, err
}
