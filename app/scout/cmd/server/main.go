package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
	"github.com/iWorld-y/painpoint_scout/app/scout/internal/service"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "scout"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/scout/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, sc *conf.Scout, hs *http.Server, gs *grpc.Server, svc *service.ScoutService) *kratos.App {
	opts := []kratos.Option{
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs, gs),
	}
	if sc != nil && sc.ScanOnStart {
		opts = append(opts, kratos.AfterStart(func(ctx context.Context) error {
			go svc.Warmup(context.Background())
			return nil
		}))
	}
	return kratos.New(opts...)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}
	if jwtKey := os.Getenv("SCOUT_JWT_KEY"); jwtKey != "" {
		if bc.Auth == nil {
			bc.Auth = &conf.Auth{}
		}
		bc.Auth.JwtKey = jwtKey
	}

	app, cleanup, err := initApp(bc.Server, bc.Data, bc.Auth, bc.Scout, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
