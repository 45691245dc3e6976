package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/sd"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/naming"

	nodepb "github.com/world-in-progress/yggdrasilsvc/pb/nodesvc"
	scenepb "github.com/world-in-progress/yggdrasilsvc/pb/scenesvc"
	nodeendpoints "github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/endpoints"
	nodeservice "github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/service"
	nodetransports "github.com/world-in-progress/yggdrasilsvc/pkg/nodesvc/transports"
	sceneendpoints "github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/endpoints"
	sceneservice "github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/service"
	scenetransports "github.com/world-in-progress/yggdrasilsvc/pkg/scenesvc/transports"
	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
)

func newTracers(t *testing.T) (stdopentracing.Tracer, *stdzipkin.Tracer) {
	t.Helper()
	zipkinTracer, err := stdzipkin.NewTracer(reporter.NewNoopReporter(), stdzipkin.WithNoopTracer(true))
	require.NoError(t, err)
	return stdopentracing.GlobalTracer(), zipkinTracer
}

// startBackends serves both services over gRPC on loopback listeners and
// returns their addresses.
func startBackends(t *testing.T) (nodeAddr, sceneAddr string) {
	t.Helper()
	tracer, zipkinTracer := newTracers(t)
	logger := log.NewNopLogger()

	nodeSvc := nodeservice.New(logger, discard.NewCounter(), discard.NewHistogram())
	nodeServer := grpc.NewServer()
	nodepb.RegisterNodesvcServer(nodeServer, nodetransports.MakeGRPCServer(nodeendpoints.New(nodeSvc, logger, tracer, zipkinTracer), tracer, zipkinTracer, logger))

	sceneSvc := sceneservice.New(logger, discard.NewCounter(), discard.NewHistogram())
	sceneServer := grpc.NewServer()
	scenepb.RegisterScenesvcServer(sceneServer, scenetransports.MakeGRPCServer(sceneendpoints.New(sceneSvc, logger, tracer, zipkinTracer), tracer, zipkinTracer, logger))

	return serve(t, nodeServer), serve(t, sceneServer)
}

func serve(t *testing.T, server *grpc.Server) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go server.Serve(lis)
	t.Cleanup(server.Stop)
	return lis.Addr().String()
}

func newGateway(t *testing.T, backends Backends) *httptest.Server {
	t.Helper()
	tracer, zipkinTracer := newTracers(t)
	h := MakeHandler(context.Background(), backends, 3, 2*time.Second, tracer, zipkinTracer, log.NewNopLogger())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestGatewayRoot(t *testing.T) {
	srv := newGateway(t, Backends{Nodesvc: sd.FixedInstancer{}, Scenesvc: sd.FixedInstancer{}})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestGatewayForwardsToBackends(t *testing.T) {
	nodeAddr, sceneAddr := startBackends(t)
	srv := newGateway(t, Backends{
		Nodesvc:  sd.FixedInstancer{nodeAddr},
		Scenesvc: sd.FixedInstancer{sceneAddr},
	})

	code, body := postJSON(t, srv.URL+"/nodesvc"+nodetransports.CreateNodePath, `{"name": "root"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, nodeservice.PlaceholderNodeID, body["_id"])

	code, body = postJSON(t, srv.URL+"/scenesvc"+scenetransports.AddPath, `{"a": 2.5, "b": 3.5}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 6.0, body["result"])
}

func TestGatewayValidatesBeforeForwarding(t *testing.T) {
	// No instances: a request that reached the balancer would fail with 503.
	srv := newGateway(t, Backends{Nodesvc: sd.FixedInstancer{}, Scenesvc: sd.FixedInstancer{}})

	code, body := postJSON(t, srv.URL+"/nodesvc"+nodetransports.CreateNodePath, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, body["detail"])

	code, _ = postJSON(t, srv.URL+"/scenesvc"+scenetransports.AddPath, `{"a": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestGatewayWithoutInstances(t *testing.T) {
	srv := newGateway(t, Backends{Nodesvc: sd.FixedInstancer{}, Scenesvc: sd.FixedInstancer{}})

	code, body := postJSON(t, srv.URL+"/scenesvc"+scenetransports.AddPath, `{"a": 1, "b": 2}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.NotEmpty(t, body["error"])
}

func TestDirectorServiceName(t *testing.T) {
	tracer, zipkinTracer := newTracers(t)
	d := NewDirector(map[string]string{}, tracer, zipkinTracer)

	assert.Equal(t, "nodesvc", d.ServiceName("/pb.Nodesvc/CreateNode"))
	assert.Equal(t, "scenesvc", d.ServiceName("/pb.Scenesvc/Add"))
	assert.Equal(t, "", d.ServiceName("bogus"))
}

func TestDirectorRejectsUnknownService(t *testing.T) {
	tracer, zipkinTracer := newTracers(t)
	d := NewDirector(map[string]string{"nodesvc": "127.0.0.1:1"}, tracer, zipkinTracer)

	_, _, err := d.Direct(context.Background(), "/grpc.health.v1.Health/Check")
	require.Error(t, err)
}

func TestGRPCProxy(t *testing.T) {
	nodeAddr, sceneAddr := startBackends(t)
	tracer, zipkinTracer := newTracers(t)

	director := NewDirector(map[string]string{"nodesvc": nodeAddr, "scenesvc": sceneAddr}, tracer, zipkinTracer)
	t.Cleanup(func() { director.Close() })
	proxyAddr := serve(t, NewProxyServer(director, zipkinTracer))

	conn, err := grpc.Dial(proxyAddr, shared.ClientDialOptions(tracer)...)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nodeReply, err := nodepb.NewNodesvcClient(conn).CreateNode(ctx, &nodepb.CreateNodeRequest{Name: "root"})
	require.NoError(t, err)
	assert.Equal(t, nodeservice.PlaceholderNodeID, nodeReply.Id)

	sceneReply, err := scenepb.NewScenesvcClient(conn).Add(ctx, &scenepb.AddRequest{A: 2.5, B: 3.5})
	require.NoError(t, err)
	assert.Equal(t, 6.0, sceneReply.Result)
}

// staticResolver reports a fixed address per service name, the way the
// Consul resolver reports the passing instances of a service.
type staticResolver map[string]string

func (r staticResolver) Resolve(target string) (naming.Watcher, error) {
	return &staticWatcher{addr: r[target], done: make(chan struct{})}, nil
}

type staticWatcher struct {
	addr string
	sent bool
	done chan struct{}
}

func (w *staticWatcher) Next() ([]*naming.Update, error) {
	if !w.sent {
		w.sent = true
		return []*naming.Update{{Op: naming.Add, Addr: w.addr}}, nil
	}
	<-w.done
	return nil, errors.New("watcher closed")
}

func (w *staticWatcher) Close() { close(w.done) }

func TestDirectorDialsByServiceNameWithResolver(t *testing.T) {
	tracer, zipkinTracer := newTracers(t)

	fixed := NewDirector(map[string]string{"nodesvc": "10.0.0.1:8181"}, tracer, zipkinTracer)
	target, fixedOpts := fixed.dialOptions("nodesvc", "10.0.0.1:8181")
	assert.Equal(t, "10.0.0.1:8181", target)

	resolved := NewDirector(map[string]string{"nodesvc": ""}, tracer, zipkinTracer, WithConsul("127.0.0.1:8500"))
	target, opts := resolved.dialOptions("nodesvc", "")
	assert.Equal(t, "nodesvc", target)
	assert.Len(t, opts, len(fixedOpts)+1)
}

func TestGRPCProxyWithResolver(t *testing.T) {
	nodeAddr, sceneAddr := startBackends(t)
	tracer, zipkinTracer := newTracers(t)

	r := staticResolver{"nodesvc": nodeAddr, "scenesvc": sceneAddr}
	director := NewDirector(map[string]string{"nodesvc": "", "scenesvc": ""}, tracer, zipkinTracer, WithResolver(r))
	t.Cleanup(func() { director.Close() })
	proxyAddr := serve(t, NewProxyServer(director, zipkinTracer))

	conn, err := grpc.Dial(proxyAddr, shared.ClientDialOptions(tracer)...)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nodeReply, err := nodepb.NewNodesvcClient(conn).CreateNode(ctx, &nodepb.CreateNodeRequest{Name: "root"})
	require.NoError(t, err)
	assert.Equal(t, nodeservice.PlaceholderNodeID, nodeReply.Id)

	sceneReply, err := scenepb.NewScenesvcClient(conn).Add(ctx, &scenepb.AddRequest{A: 1, B: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, sceneReply.Result)
}

func TestInstrumentHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := InstrumentHandler(reg, "yggdrasil", "router", NewHandlerBuilder().Router)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "yggdrasil_router_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts[labelValue(m.GetLabel(), "code")] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"200": 1}, counts)
}

func labelValue(labels []*dto.LabelPair, name string) string {
	for _, l := range labels {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
