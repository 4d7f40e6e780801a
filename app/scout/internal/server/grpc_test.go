package server

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
)

func TestGRPC_HealthCheck(t *testing.T) {
	srv := NewGRPCServer(&conf.Server{Grpc: &conf.GRPC{Addr: "127.0.0.1:0", Timeout: "1s"}}, log.DefaultLogger)
	ep, err := srv.Endpoint()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Start(ctx) }()
	defer srv.Stop(context.Background())

	conn, err := grpc.NewClient(ep.Host, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := grpc_health_v1.NewHealthClient(conn)
	assert.Eventually(t, func() bool {
		reqCtx, done := context.WithTimeout(ctx, time.Second)
		defer done()
		resp, err := client.Check(reqCtx, &grpc_health_v1.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
	}, 5*time.Second, 50*time.Millisecond)
}
