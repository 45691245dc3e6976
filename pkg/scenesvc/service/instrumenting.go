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
	next     ScenesvcService
}

// InstrumentingMiddleware counts calls and observes their latency, labelled
// by method and error.
func InstrumentingMiddleware(requests metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next ScenesvcService) ScenesvcService {
		return instrumentingMiddleware{requests, latency, next}
	}
}

func (im instrumentingMiddleware) Add(ctx context.Context, a float64, b float64) (result float64, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "Add", "error", fmt.Sprint(err != nil)}
		im.requests.With(lvs...).Add(1)
		im.latency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return im.next.Add(ctx, a, b)
}
