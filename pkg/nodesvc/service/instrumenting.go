package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
)

type instrumentingMiddleware struct {
	requests metrics.Counter
	latency  metrics.Histogram
	next     NodesvcService
}

// InstrumentingMiddleware counts calls and observes their latency, labelled
// by method and error.
func InstrumentingMiddleware(requests metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next NodesvcService) NodesvcService {
		return instrumentingMiddleware{requests, latency, next}
	}
}

func (im instrumentingMiddleware) CreateNode(ctx context.Context, name string) (id string, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "CreateNode", "error", fmt.Sprint(err != nil)}
		im.requests.With(lvs...).Add(1)
		im.latency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return im.next.CreateNode(ctx, name)
}
