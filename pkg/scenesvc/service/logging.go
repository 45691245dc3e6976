package service

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type loggingMiddleware struct {
	logger log.Logger
	next   ScenesvcService
}

// LoggingMiddleware takes a logger as a dependency
// and returns a ServiceMiddleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next ScenesvcService) ScenesvcService {
		return loggingMiddleware{level.Info(logger), next}
	}
}

func (lm loggingMiddleware) Add(ctx context.Context, a float64, b float64) (result float64, err error) {
	defer func(begin time.Time) {
		lm.logger.Log("method", "Add", "a", a, "b", b, "result", result, "err", err, "took", time.Since(begin))
	}(time.Now())

	return lm.next.Add(ctx, a, b)
}
