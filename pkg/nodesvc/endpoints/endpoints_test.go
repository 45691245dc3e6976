package endpoints

import (
	"context"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/validation"
)

func newEndpoints(t *testing.T) Endpoints {
	t.Helper()
	zipkinTracer, err := stdzipkin.NewTracer(reporter.NewNoopReporter(), stdzipkin.WithNoopTracer(true))
	require.NoError(t, err)
	svc := service.New(log.NewNopLogger(), discard.NewCounter(), discard.NewHistogram())
	return New(svc, log.NewNopLogger(), stdopentracing.GlobalTracer(), zipkinTracer)
}

func TestCreateNodeEndpoint(t *testing.T) {
	eps := newEndpoints(t)

	id, err := eps.CreateNode(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, service.PlaceholderNodeID, id)
}

func TestCreateNodeEndpointMissingName(t *testing.T) {
	eps := newEndpoints(t)

	_, err := eps.CreateNodeEndpoint(context.Background(), CreateNodeRequest{})
	require.Error(t, err)
	verr, ok := err.(*validation.Error)
	require.True(t, ok, "expected *validation.Error, got %T", err)
	assert.Equal(t, []string{"body", "name"}, verr.Detail[0].Loc)
}

func TestValidationDoesNotTripBreaker(t *testing.T) {
	eps := newEndpoints(t)

	// gobreaker's default settings open after five consecutive failures.
	for i := 0; i < 10; i++ {
		_, err := eps.CreateNodeEndpoint(context.Background(), CreateNodeRequest{})
		require.Error(t, err)
	}
	id, err := eps.CreateNode(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, service.PlaceholderNodeID, id)
}
