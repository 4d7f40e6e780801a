package v1

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationScoutScan           = "/scout.v1.Scout/Scan"
	OperationScoutGetBoard       = "/scout.v1.Scout/GetBoard"
	OperationScoutListFavorites  = "/scout.v1.Scout/ListFavorites"
	OperationScoutToggleFavorite = "/scout.v1.Scout/ToggleFavorite"
	OperationScoutListSectors    = "/scout.v1.Scout/ListSectors"
	OperationScoutSignUp         = "/scout.v1.Scout/SignUp"
	OperationScoutSignIn         = "/scout.v1.Scout/SignIn"
)

// ScoutHTTPServer 看板服务的 HTTP 接口
type ScoutHTTPServer interface {
	Scan(context.Context, *ScanReq) (*BoardReply, error)
	GetBoard(context.Context, *GetBoardReq) (*BoardReply, error)
	ListFavorites(context.Context, *ListFavoritesReq) (*ListFavoritesReply, error)
	ToggleFavorite(context.Context, *ToggleFavoriteReq) (*ToggleFavoriteReply, error)
	ListSectors(context.Context, *ListSectorsReq) (*ListSectorsReply, error)
	SignUp(context.Context, *AuthReq) (*SignUpReply, error)
	SignIn(context.Context, *AuthReq) (*SignInReply, error)
}

// RegisterScoutHTTPServer 注册全部路由
func RegisterScoutHTTPServer(s *http.Server, srv ScoutHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/scan", bodyHandler(OperationScoutScan, srv.Scan))
	r.GET("/v1/board", queryHandler(OperationScoutGetBoard, srv.GetBoard))
	r.GET("/v1/favorites", queryHandler(OperationScoutListFavorites, srv.ListFavorites))
	r.POST("/v1/favorites/toggle", bodyHandler(OperationScoutToggleFavorite, srv.ToggleFavorite))
	r.GET("/v1/sectors", queryHandler(OperationScoutListSectors, srv.ListSectors))
	r.POST("/v1/auth/signup", bodyHandler(OperationScoutSignUp, srv.SignUp))
	r.POST("/v1/auth/signin", bodyHandler(OperationScoutSignIn, srv.SignIn))
}

// bodyHandler 从请求体绑定参数，经过 server 中间件后输出结果
func bodyHandler[Req any, Reply any](operation string, fn func(context.Context, *Req) (*Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		return invoke(ctx, operation, &in, fn)
	}
}

// queryHandler 从查询参数绑定参数
func queryHandler[Req any, Reply any](operation string, fn func(context.Context, *Req) (*Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		return invoke(ctx, operation, &in, fn)
	}
}

func invoke[Req any, Reply any](ctx http.Context, operation string, in *Req, fn func(context.Context, *Req) (*Reply, error)) error {
	http.SetOperation(ctx, operation)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return fn(ctx, req.(*Req))
	})
	out, err := h(ctx, in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*Reply))
}
