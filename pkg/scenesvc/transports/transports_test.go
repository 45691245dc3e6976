package transports

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	"github.com/stretchr/testify/require"

	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
)

func newTracers(t *testing.T) (stdopentracing.Tracer, *stdzipkin.Tracer) {
	t.Helper()
	zipkinTracer, err := stdzipkin.NewTracer(reporter.NewNoopReporter(), stdzipkin.WithNoopTracer(true))
	require.NoError(t, err)
	return stdopentracing.GlobalTracer(), zipkinTracer
}

func newEndpoints(t *testing.T) endpoints.Endpoints {
	t.Helper()
	otTracer, zipkinTracer := newTracers(t)
	svc := service.New(log.NewNopLogger(), discard.NewCounter(), discard.NewHistogram())
	return endpoints.New(svc, log.NewNopLogger(), otTracer, zipkinTracer)
}
