// Package discovery registers service instances with Consul and lets the
// router find them.
package discovery

import (
	"fmt"
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/sd"
	consulsd "github.com/go-kit/kit/sd/consul"
	consulapi "github.com/hashicorp/consul/api"
)

// Tag marks instances that expose the gRPC API on their registered port.
const Tag = "grpc"

// NewClient returns a Consul client for the agent at addr.
func NewClient(addr string) (consulsd.Client, error) {
	cfg := consulapi.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return consulsd.NewClient(client), nil
}

// Registration describes one instance: its gRPC address is what the router
// dials, its HTTP port serves the health check.
func Registration(serviceName, host, grpcPort, httpPort string) (*consulapi.AgentServiceRegistration, error) {
	port, err := strconv.Atoi(grpcPort)
	if err != nil {
		return nil, fmt.Errorf("invalid grpc port %q: %v", grpcPort, err)
	}
	return &consulapi.AgentServiceRegistration{
		ID:      fmt.Sprintf("%s-%s-%s", serviceName, host, grpcPort),
		Name:    serviceName,
		Tags:    []string{Tag},
		Address: host,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%s/health", host, httpPort),
			Interval:                       "10s",
			Timeout:                        "1s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}, nil
}

// NewRegistrar returns a registrar for the instance described by reg.
func NewRegistrar(client consulsd.Client, reg *consulapi.AgentServiceRegistration, logger log.Logger) sd.Registrar {
	return consulsd.NewRegistrar(client, reg, logger)
}

// NewInstancer watches the passing gRPC instances of serviceName.
func NewInstancer(client consulsd.Client, serviceName string, logger log.Logger) sd.Instancer {
	return consulsd.NewInstancer(client, logger, serviceName, []string{Tag}, true)
}
