package transports

import (
	"context"
	"net"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/world-in-progress/yggdrasilsvc/pb/scenesvc"
)

func dialBufconn(t *testing.T) *grpc.ClientConn {
	t.Helper()
	otTracer, zipkinTracer := newTracers(t)

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	pb.RegisterScenesvcServer(server, MakeGRPCServer(newEndpoints(t), otTracer, zipkinTracer, log.NewNopLogger()))
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGRPCAdd(t *testing.T) {
	conn := dialBufconn(t)

	reply, err := pb.NewScenesvcClient(conn).Add(context.Background(), &pb.AddRequest{A: 2.5, B: 3.5})
	require.NoError(t, err)
	assert.Equal(t, 6.0, reply.Result)
}

func TestGRPCAddOverflow(t *testing.T) {
	conn := dialBufconn(t)

	_, err := pb.NewScenesvcClient(conn).Add(context.Background(), &pb.AddRequest{A: 1.7e308, B: 1.7e308})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCClient(t *testing.T) {
	conn := dialBufconn(t)
	otTracer, zipkinTracer := newTracers(t)

	client := NewGRPCClient(conn, otTracer, zipkinTracer, log.NewNopLogger())
	result, err := client.Add(context.Background(), -1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, -0.5, result)
}
