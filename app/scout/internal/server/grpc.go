package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
)

// NewGRPCServer 只承载健康检查与反射，供编排系统探活
func NewGRPCServer(c *conf.Server, logger log.Logger) *grpc.Server {
	var opts = []grpc.ServerOption{
		grpc.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c != nil && c.Grpc != nil {
		if c.Grpc.Addr != "" {
			opts = append(opts, grpc.Address(c.Grpc.Addr))
		}
		if c.Grpc.Timeout != "" {
			if d, err := time.ParseDuration(c.Grpc.Timeout); err == nil {
				opts = append(opts, grpc.Timeout(d))
			}
		}
	}
	return grpc.NewServer(opts...)
}
