package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/sd"
	"github.com/go-kit/kit/sd/lb"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"google.golang.org/grpc"

	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/transports"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

func MakeSceneSvcHandler(ctx context.Context, instancer sd.Instancer, retryMax int, retryTimeout time.Duration, tracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	var eps = endpoints.Endpoints{}
	{
		factory := sceneSvcFactory(ctx, endpoints.MakeAddEndpoint, tracer, zipkinTracer, logger)
		endpointer := sd.NewEndpointer(instancer, factory, logger)
		balancer := lb.NewRoundRobin(endpointer)
		addEndpoint := lb.Retry(retryMax, retryTimeout, balancer)
		eps.AddEndpoint = endpoints.ValidationMiddleware()(addEndpoint)
	}

	r := mux.NewRouter()
	transports.MountHTTPRoutes(r, eps, tracer, zipkinTracer, logger)
	return r
}

func sceneSvcFactory(
	ctx context.Context,
	makeEndpoint func(service.ScenesvcService) endpoint.Endpoint,
	tracer stdopentracing.Tracer,
	zipkinTracer *stdzipkin.Tracer,
	logger log.Logger) sd.Factory {

	return func(instance string) (endpoint.Endpoint, io.Closer, error) {
		conn, err := grpc.DialContext(ctx, instance, shared.ClientDialOptions(tracer)...)
		if err != nil {
			return nil, nil, err
		}
		svc := transports.NewGRPCClient(conn, tracer, zipkinTracer, logger)
		return makeEndpoint(svc), conn, nil
	}
}
