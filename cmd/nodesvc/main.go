package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/sd"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pb "github.com/world-in-progress/yggdrasilsvc/pb/nodesvc"
	"github.com/world-in-progress/yggdrasilsvc/pkg/discovery"
	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/endpoints"
	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/service"
	"github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/transports"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

const (
	defZipkinV2URL string = ""
	defConsulAddr  string = ""
	defNameSpace   string = "yggdrasil"
	defServiceName string = "nodesvc"
	defLogLevel    string = "info"
	defServiceHost string = "localhost"
	defHTTPPort    string = "8180"
	defGRPCPort    string = "8181"
	envZipkinV2URL string = "QS_ZIPKIN_V2_URL"
	envConsulAddr  string = "QS_CONSUL_ADDR"
	envNameSpace   string = "QS_NODESVC_NAMESPACE"
	envServiceName string = "QS_NODESVC_SERVICE_NAME"
	envLogLevel    string = "QS_NODESVC_LOG_LEVEL"
	envServiceHost string = "QS_NODESVC_SERVICE_HOST"
	envHTTPPort    string = "QS_NODESVC_HTTP_PORT"
	envGRPCPort    string = "QS_NODESVC_GRPC_PORT"
)

type config struct {
	nameSpace   string
	serviceName string
	logLevel    string
	serviceHost string
	httpPort    string
	grpcPort    string
	zipkinV2URL string
	consulAddr  string
}

// Env reads specified environment variable. If no value has been found,
// fallback is returned.
func env(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cfg := loadConfig()

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = level.NewFilter(logger, levelOption(cfg.logLevel))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}
	logger = log.With(logger, "service", cfg.serviceName)

	errs := make(chan error, 2)
	grpcServer, httpHandler, reporter := NewServer(cfg, logger)
	defer reporter.Close()
	hs := health.NewServer()
	hs.SetServingStatus(cfg.serviceName, healthgrpc.HealthCheckResponse_SERVING)

	go startHTTPServer(cfg, httpHandler, logger, errs)
	go startGRPCServer(cfg, hs, grpcServer, logger, errs)

	if registrar := newRegistrar(cfg, logger); registrar != nil {
		registrar.Register()
		defer registrar.Deregister()
	}

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	err := <-errs
	level.Info(logger).Log("serviceName", cfg.serviceName, "terminated", err)
}

func loadConfig() (cfg config) {
	cfg.nameSpace = env(envNameSpace, defNameSpace)
	cfg.serviceName = env(envServiceName, defServiceName)
	cfg.logLevel = env(envLogLevel, defLogLevel)
	cfg.serviceHost = env(envServiceHost, defServiceHost)
	cfg.httpPort = env(envHTTPPort, defHTTPPort)
	cfg.grpcPort = env(envGRPCPort, defGRPCPort)
	cfg.zipkinV2URL = env(envZipkinV2URL, defZipkinV2URL)
	cfg.consulAddr = env(envConsulAddr, defConsulAddr)
	return cfg
}

func levelOption(l string) level.Option {
	switch strings.ToLower(l) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

type closer interface {
	Close() error
}

func NewServer(cfg config, logger log.Logger) (pb.NodesvcServer, http.Handler, closer) {
	var tracer stdopentracing.Tracer
	{
		tracer = stdopentracing.GlobalTracer()
	}

	var zipkinTracer *zipkin.Tracer
	reporter := zipkinhttp.NewReporter(cfg.zipkinV2URL)
	{
		var (
			err           error
			hostPort      = fmt.Sprintf("%s:%s", cfg.serviceHost, cfg.httpPort)
			serviceName   = cfg.serviceName
			useNoopTracer = (cfg.zipkinV2URL == "")
		)
		zEP, _ := zipkin.NewEndpoint(serviceName, hostPort)
		zipkinTracer, err = zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(zEP), zipkin.WithNoopTracer(useNoopTracer))
		if err != nil {
			level.Error(logger).Log("err", err)
			os.Exit(1)
		}
		if !useNoopTracer {
			level.Info(logger).Log("tracer", "Zipkin", "type", "Native", "URL", cfg.zipkinV2URL)
		}
	}

	var requests, latency = newMetrics(cfg)

	service := service.New(logger, requests, latency)
	endpoints := endpoints.New(service, logger, tracer, zipkinTracer)
	httpHandler := transports.NewHTTPHandler(endpoints, tracer, zipkinTracer, logger)
	grpcServer := transports.MakeGRPCServer(endpoints, tracer, zipkinTracer, logger)

	return grpcServer, httpHandler, reporter
}

func newMetrics(cfg config) (*kitprometheus.Counter, *kitprometheus.Summary) {
	fieldKeys := []string{"method", "error"}
	requests := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: cfg.nameSpace,
		Subsystem: cfg.serviceName,
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, fieldKeys)
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: cfg.nameSpace,
		Subsystem: cfg.serviceName,
		Name:      "request_latency_seconds",
		Help:      "Total duration of requests in seconds.",
	}, fieldKeys)
	return requests, latency
}

func newRegistrar(cfg config, logger log.Logger) sd.Registrar {
	if cfg.consulAddr == "" {
		return nil
	}
	client, err := discovery.NewClient(cfg.consulAddr)
	if err != nil {
		level.Error(logger).Log("consul", cfg.consulAddr, "err", err)
		os.Exit(1)
	}
	reg, err := discovery.Registration(cfg.serviceName, cfg.serviceHost, cfg.grpcPort, cfg.httpPort)
	if err != nil {
		level.Error(logger).Log("consul", cfg.consulAddr, "err", err)
		os.Exit(1)
	}
	return discovery.NewRegistrar(client, reg, logger)
}

func startHTTPServer(cfg config, httpHandler http.Handler, logger log.Logger, errs chan error) {
	p := fmt.Sprintf(":%s", cfg.httpPort)
	level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "HTTP", "exposed", cfg.httpPort)
	errs <- http.ListenAndServe(p, httpHandler)
}

func startGRPCServer(cfg config, hs *health.Server, grpcServer pb.NodesvcServer, logger log.Logger, errs chan error) {
	p := fmt.Sprintf(":%s", cfg.grpcPort)
	listener, err := net.Listen("tcp", p)
	if err != nil {
		level.Error(logger).Log("serviceName", cfg.serviceName, "protocol", "GRPC", "listen", cfg.grpcPort, "err", err)
		os.Exit(1)
	}

	var server *grpc.Server
	level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "GRPC", "exposed", cfg.grpcPort)
	server = shared.NewGRPCServer(stdopentracing.GlobalTracer())
	pb.RegisterNodesvcServer(server, grpcServer)
	healthgrpc.RegisterHealthServer(server, hs)
	reflection.Register(server)
	errs <- server.Serve(listener)
}
