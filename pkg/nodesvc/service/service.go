package service

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
)

// PlaceholderNodeID is returned for every created node until the node tree
// hands out real identifiers.
const PlaceholderNodeID = "YOOOO-The-FIRST-NODE-OF-The-Tree"

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(NodesvcService) NodesvcService

// NodesvcService accepts node-creation requests.
type NodesvcService interface {
	CreateNode(ctx context.Context, name string) (id string, err error)
}

// the concrete implementation of service interface
type stubNodesvcService struct {
	logger log.Logger
}

// New return a new instance of the service.
// If you want to add service middleware this is the place to put them.
func New(logger log.Logger, requests metrics.Counter, latency metrics.Histogram) (s NodesvcService) {
	var svc NodesvcService
	{
		svc = &stubNodesvcService{logger: logger}
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(requests, latency)(svc)
	}
	return svc
}

// CreateNode records the requested name and hands back the placeholder id.
func (no *stubNodesvcService) CreateNode(ctx context.Context, name string) (id string, err error) {
	level.Info(no.logger).Log("node", "create", "name", name)
	return PlaceholderNodeID, nil
}
