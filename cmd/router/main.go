package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/sd"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/reflection"

	"github.com/world-in-progress/yggdrasilsvc/pkg/discovery"
	routertransport "github.com/world-in-progress/yggdrasilsvc/pkg/router/transport"
)

const (
	defZipkinV2URL   = ""
	defConsulAddr    = ""
	defNameSpace     = "yggdrasil"
	defServiceName   = "router"
	defLogLevel      = "info"
	defHTTPPort      = "8080"
	defGRPCPort      = "8081"
	defRretryTimeout = "500" // time.Millisecond
	defRretryMax     = "3"
	defNodesvcURL    = "localhost:8181"
	defScenesvcURL   = "localhost:8281"

	envZipkinV2URL  = "QS_ZIPKIN_V2_URL"
	envConsulAddr   = "QS_CONSUL_ADDR"
	envNameSpace    = "QS_ROUTER_NAMESPACE"
	envServiceName  = "QS_ROUTER_SERVICE_NAME"
	envLogLevel     = "QS_ROUTER_LOG_LEVEL"
	envHTTPPort     = "QS_ROUTER_HTTP_PORT"
	envGRPCPort     = "QS_ROUTER_GRPC_PORT"
	envRetryMax     = "QS_ROUTER_RETRY_MAX"
	envRetryTimeout = "QS_ROUTER_RETRY_TIMEOUT"
	envNodesvcURL   = "QS_NODESVC_URL"
	envScenesvcURL  = "QS_SCENESVC_URL"
)

// Env reads specified environment variable. If no value has been found,
// fallback is returned.
func env(key string, fallback string) (s0 string) {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type config struct {
	nameSpace    string
	serviceName  string
	logLevel     string
	httpPort     string
	grpcPort     string
	zipkinV2URL  string
	consulAddr   string
	retryMax     int64
	retryTimeout int64
	nodesvcURL   string
	scenesvcURL  string
	routerMap    map[string]string
}

func main() {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}
	cfg := loadConfig(logger)
	logger = level.NewFilter(logger, levelOption(cfg.logLevel))
	logger = log.With(logger, "service", cfg.serviceName)

	var tracer stdopentracing.Tracer
	{
		tracer = stdopentracing.GlobalTracer()
	}

	var zipkinTracer *zipkin.Tracer
	{
		var (
			err           error
			hostPort      = fmt.Sprintf("localhost:%s", cfg.httpPort)
			serviceName   = cfg.serviceName
			useNoopTracer = (cfg.zipkinV2URL == "")
			reporter      = zipkinhttp.NewReporter(cfg.zipkinV2URL)
		)
		defer reporter.Close()
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

	ctx := context.Background()
	errs := make(chan error, 2)

	backends := makeBackends(cfg, logger)
	defer backends.Nodesvc.Stop()
	defer backends.Scenesvc.Stop()

	r := routertransport.MakeHandler(ctx, backends, int(cfg.retryMax), time.Duration(cfg.retryTimeout)*time.Millisecond, tracer, zipkinTracer, logger)
	r = routertransport.InstrumentHandler(stdprometheus.DefaultRegisterer, cfg.nameSpace, cfg.serviceName, r)

	var directorOpts []routertransport.DirectorOption
	if cfg.consulAddr != "" {
		directorOpts = append(directorOpts, routertransport.WithConsul(cfg.consulAddr))
	}
	director := routertransport.NewDirector(cfg.routerMap, tracer, zipkinTracer, directorOpts...)
	defer director.Close()

	go startHTTPServer(r, cfg.httpPort, logger, errs)
	go startGRPCServer(director, zipkinTracer, cfg.grpcPort, logger, errs)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	errc := <-errs
	level.Info(logger).Log("serviceName", cfg.serviceName, "terminated", errc)
}

func loadConfig(logger log.Logger) (cfg config) {
	retryMax, err := strconv.ParseInt(env(envRetryMax, defRretryMax), 10, 0)
	if err != nil {
		level.Error(logger).Log("envRetryMax", envRetryMax, "error", err)
		retryMax, _ = strconv.ParseInt(defRretryMax, 10, 0)
	}

	retryTimeout, err := strconv.ParseInt(env(envRetryTimeout, defRretryTimeout), 10, 0)
	if err != nil {
		level.Error(logger).Log("envRetryTimeout", envRetryTimeout, "error", err)
		retryTimeout, _ = strconv.ParseInt(defRretryTimeout, 10, 0)
	}

	cfg.nameSpace = env(envNameSpace, defNameSpace)
	cfg.serviceName = env(envServiceName, defServiceName)
	cfg.logLevel = env(envLogLevel, defLogLevel)
	cfg.httpPort = env(envHTTPPort, defHTTPPort)
	cfg.grpcPort = env(envGRPCPort, defGRPCPort)
	cfg.zipkinV2URL = env(envZipkinV2URL, defZipkinV2URL)
	cfg.consulAddr = env(envConsulAddr, defConsulAddr)
	cfg.retryMax = retryMax
	cfg.retryTimeout = retryTimeout
	cfg.nodesvcURL = env(envNodesvcURL, defNodesvcURL)
	cfg.scenesvcURL = env(envScenesvcURL, defScenesvcURL)

	cfg.routerMap = map[string]string{}
	cfg.routerMap["nodesvc"] = cfg.nodesvcURL
	cfg.routerMap["scenesvc"] = cfg.scenesvcURL
	return
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

// makeBackends resolves instances through Consul when an agent is
// configured, otherwise it uses the fixed addresses from the environment.
func makeBackends(cfg config, logger log.Logger) routertransport.Backends {
	if cfg.consulAddr == "" {
		level.Info(logger).Log("discovery", "fixed", "nodesvc", cfg.nodesvcURL, "scenesvc", cfg.scenesvcURL)
		return routertransport.Backends{
			Nodesvc:  sd.FixedInstancer{cfg.nodesvcURL},
			Scenesvc: sd.FixedInstancer{cfg.scenesvcURL},
		}
	}

	client, err := discovery.NewClient(cfg.consulAddr)
	if err != nil {
		level.Error(logger).Log("consul", cfg.consulAddr, "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("discovery", "consul", "addr", cfg.consulAddr)
	return routertransport.Backends{
		Nodesvc:  discovery.NewInstancer(client, "nodesvc", logger),
		Scenesvc: discovery.NewInstancer(client, "scenesvc", logger),
	}
}

func startHTTPServer(handler http.Handler, port string, logger log.Logger, errs chan error) {
	if port == "" {
		return
	}
	p := fmt.Sprintf(":%s", port)
	level.Info(logger).Log("protocol", "HTTP", "exposed", port)
	errs <- http.ListenAndServe(p, handler)
}

func startGRPCServer(director *routertransport.Director, zipkinTracer *zipkin.Tracer, port string, logger log.Logger, errs chan error) {
	if port == "" {
		return
	}
	p := fmt.Sprintf(":%s", port)
	listener, err := net.Listen("tcp", p)
	if err != nil {
		level.Error(logger).Log("GRPC", "proxy", "listen", port, "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("GRPC", "proxy", "exposed", port)
	server := routertransport.NewProxyServer(director, zipkinTracer)
	reflection.Register(server)
	errs <- server.Serve(listener)
}
