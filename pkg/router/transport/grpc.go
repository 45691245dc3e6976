package transport

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/mwitkow/grpc-proxy/proxy"
	consulresolver "github.com/nicholasjackson/grpc-consul-resolver"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkingrpc "github.com/openzipkin/zipkin-go/middleware/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/naming"
	"google.golang.org/grpc/status"

	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

const grpcRouterReg = `([a-zA-Z]+)/`

// Director routes proxied gRPC calls to the backend named by the call's
// service, e.g. "/pb.Nodesvc/CreateNode" goes to the "nodesvc" target.
// Backend connections are dialed once and reused.
type Director struct {
	re           *regexp.Regexp
	routes       map[string]string
	resolver     naming.Resolver
	tracer       stdopentracing.Tracer
	zipkinTracer *stdzipkin.Tracer

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// DirectorOption configures a Director.
type DirectorOption func(*Director)

// WithResolver makes the Director dial each service by name through r and
// balance calls round robin over the instances r reports. The addresses in
// routes are then ignored.
func WithResolver(r naming.Resolver) DirectorOption {
	return func(d *Director) { d.resolver = r }
}

// WithConsul resolves services through the passing instances registered with
// the Consul agent at consulAddr.
func WithConsul(consulAddr string) DirectorOption {
	return WithResolver(consulresolver.NewServiceQueryResolver(consulAddr))
}

// NewDirector returns a Director over routes, a map of lower-cased service
// name to backend address.
func NewDirector(routes map[string]string, tracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, opts ...DirectorOption) *Director {
	d := &Director{
		re:           regexp.MustCompile(grpcRouterReg),
		routes:       routes,
		tracer:       tracer,
		zipkinTracer: zipkinTracer,
		conns:        map[string]*grpc.ClientConn{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServiceName extracts the lower-cased service name from a full gRPC method.
func (d *Director) ServiceName(fullMethodName string) string {
	x := d.re.FindStringSubmatch(fullMethodName)
	if len(x) < 2 {
		return ""
	}
	return strings.ToLower(x[1])
}

// Direct implements proxy.StreamDirector.
func (d *Director) Direct(ctx context.Context, fullMethodName string) (context.Context, *grpc.ClientConn, error) {
	serviceName := d.ServiceName(fullMethodName)

	// Make sure we never forward internal services.
	target, ok := d.routes[serviceName]
	if !ok || (target == "" && d.resolver == nil) {
		return nil, nil, status.Errorf(codes.Unimplemented, "Unknown method")
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, nil, status.Errorf(codes.Unimplemented, "Unknown method")
	}
	// Copy the inbound metadata explicitly.
	outCtx := metadata.NewOutgoingContext(ctx, md.Copy())

	conn, err := d.conn(serviceName, target)
	return outCtx, conn, err
}

func (d *Director) conn(serviceName, target string) (*grpc.ClientConn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if conn, ok := d.conns[serviceName]; ok {
		return conn, nil
	}
	target, opts := d.dialOptions(serviceName, target)
	conn, err := grpc.Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	d.conns[serviceName] = conn
	return conn, nil
}

// dialOptions returns the dial target and options for serviceName, whose
// fixed address is addr.
func (d *Director) dialOptions(serviceName, addr string) (string, []grpc.DialOption) {
	opts := append(shared.ClientDialOptions(d.tracer),
		grpc.WithStatsHandler(zipkingrpc.NewClientHandler(d.zipkinTracer)),
		grpc.WithDefaultCallOptions(grpc.CallCustomCodec(proxy.Codec()), grpc.FailFast(false)),
	)
	if d.resolver == nil {
		return addr, opts
	}
	return serviceName, append(opts, grpc.WithBalancer(grpc.RoundRobin(d.resolver)))
}

// Close closes every backend connection.
func (d *Director) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	for name, conn := range d.conns {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
		delete(d.conns, name)
	}
	return err
}

// NewProxyServer returns a gRPC server that transparently forwards every
// call to the backend chosen by director.
func NewProxyServer(director *Director, zipkinTracer *stdzipkin.Tracer) *grpc.Server {
	return shared.NewGRPCServer(
		director.tracer,
		grpc.CustomCodec(proxy.Codec()),
		grpc.UnknownServiceHandler(proxy.TransparentHandler(director.Direct)),
		grpc.StatsHandler(zipkingrpc.NewServerHandler(zipkinTracer)),
	)
}
