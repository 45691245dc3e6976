package service

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
)

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(ScenesvcService) ScenesvcService

// ScenesvcService adds numbers together.
type ScenesvcService interface {
	Add(ctx context.Context, a float64, b float64) (result float64, err error)
}

// the concrete implementation of service interface
type stubScenesvcService struct {
	logger log.Logger
}

// New return a new instance of the service.
// If you want to add service middleware this is the place to put them.
func New(logger log.Logger, requests metrics.Counter, latency metrics.Histogram) (s ScenesvcService) {
	var svc ScenesvcService
	{
		svc = &stubScenesvcService{logger: logger}
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(requests, latency)(svc)
	}
	return svc
}

// Add follows IEEE 754: NaN and infinities propagate unchanged.
func (sc *stubScenesvcService) Add(ctx context.Context, a float64, b float64) (result float64, err error) {
	return a + b, nil
}
