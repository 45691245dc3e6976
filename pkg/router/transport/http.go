package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/sd"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type TransportRouter struct {
	Router *mux.Router
}

func NewHandlerBuilder() TransportRouter {
	r := mux.NewRouter()

	r.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("ok"))
	})
	r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())

	return TransportRouter{r}
}

func (tr TransportRouter) AddHandler(prefix string, h http.Handler) {
	buf := fmt.Sprintf("/%s", prefix)
	tr.Router.PathPrefix(buf).Handler(http.StripPrefix(buf, h))
}

// Backends holds where each routed service's instances come from.
type Backends struct {
	Nodesvc  sd.Instancer
	Scenesvc sd.Instancer
}

// MakeHandler serves every backend's HTTP API under its service name,
// forwarding calls over gRPC to the instances the backend's instancer yields.
func MakeHandler(ctx context.Context, backends Backends, retryMax int, retryTimeout time.Duration, tracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	tr := NewHandlerBuilder()
	tr.AddHandler("nodesvc", MakeNodeSvcHandler(ctx, backends.Nodesvc, retryMax, retryTimeout, tracer, zipkinTracer, log.With(logger, "backend", "nodesvc")))
	tr.AddHandler("scenesvc", MakeSceneSvcHandler(ctx, backends.Scenesvc, retryMax, retryTimeout, tracer, zipkinTracer, log.With(logger, "backend", "scenesvc")))
	return tr.Router
}

// InstrumentHandler counts and times every request next serves, labelled by
// status code and method, and registers the collectors with reg.
func InstrumentHandler(reg prometheus.Registerer, namespace, subsystem string, next http.Handler) http.Handler {
	fieldKeys := []string{"code", "method"}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests served.",
	}, fieldKeys)
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, fieldKeys)
	reg.MustRegister(requests, latency)

	return promhttp.InstrumentHandlerCounter(requests, promhttp.InstrumentHandlerDuration(latency, next))
}
