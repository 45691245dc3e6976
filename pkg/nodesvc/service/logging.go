package service

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type loggingMiddleware struct {
	logger log.Logger
	next   NodesvcService
}

// LoggingMiddleware takes a logger as a dependency
// and returns a ServiceMiddleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next NodesvcService) NodesvcService {
		return loggingMiddleware{level.Debug(logger), next}
	}
}

func (lm loggingMiddleware) CreateNode(ctx context.Context, name string) (id string, err error) {
	defer func(begin time.Time) {
		lm.logger.Log("method", "CreateNode", "name", name, "id", id, "err", err, "took", time.Since(begin))
	}(time.Now())

	return lm.next.CreateNode(ctx, name)
}
