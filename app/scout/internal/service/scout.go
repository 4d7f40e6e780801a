package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/painpoint_scout/app/scout/api/scout/v1"
	"github.com/iWorld-y/painpoint_scout/app/scout/internal/biz"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

type ScoutService struct {
	ucScan     *biz.ScanUseCase
	ucFavorite *biz.FavoriteUseCase
	ucUser     *biz.UserUseCase
	log        *log.Helper
}

func NewScoutService(ucScan *biz.ScanUseCase, ucFavorite *biz.FavoriteUseCase, ucUser *biz.UserUseCase, logger log.Logger) *ScoutService {
	return &ScoutService{
		ucScan:     ucScan,
		ucFavorite: ucFavorite,
		ucUser:     ucUser,
		log:        log.NewHelper(logger),
	}
}

// Warmup 启动时以不过滤的条件扫描一次
func (s *ScoutService) Warmup(ctx context.Context) {
	if _, err := s.ucScan.Scan(ctx, ""); err != nil {
		s.log.Warnf("startup scan failed: %v", err)
	}
}

// Scan 的故障通过看板上的 error 字段展示，不作为请求错误返回
func (s *ScoutService) Scan(ctx context.Context, req *pb.ScanReq) (*pb.BoardReply, error) {
	b, _ := s.ucScan.Scan(ctx, req.Sector)
	return s.boardReply(b), nil
}

func (s *ScoutService) GetBoard(ctx context.Context, req *pb.GetBoardReq) (*pb.BoardReply, error) {
	return s.boardReply(s.ucScan.Board()), nil
}

func (s *ScoutService) ListFavorites(ctx context.Context, req *pb.ListFavoritesReq) (*pb.ListFavoritesReply, error) {
	return &pb.ListFavoritesReply{Favorites: nonNil(s.ucFavorite.List())}, nil
}

func (s *ScoutService) ToggleFavorite(ctx context.Context, req *pb.ToggleFavoriteReq) (*pb.ToggleFavoriteReply, error) {
	if req.Point == nil {
		return nil, errors.BadRequest("MISSING_POINT", "point is required")
	}
	fav, err := s.ucFavorite.Toggle(*req.Point)
	if err != nil {
		return nil, err
	}
	return &pb.ToggleFavoriteReply{
		Favorite:  fav,
		Favorites: nonNil(s.ucFavorite.List()),
	}, nil
}

func (s *ScoutService) ListSectors(ctx context.Context, req *pb.ListSectorsReq) (*pb.ListSectorsReply, error) {
	sectors := make([]string, len(biz.Sectors))
	copy(sectors, biz.Sectors)
	return &pb.ListSectorsReply{Sectors: sectors}, nil
}

func (s *ScoutService) SignUp(ctx context.Context, req *pb.AuthReq) (*pb.SignUpReply, error) {
	if err := s.ucUser.SignUp(ctx, req.Email, req.Password); err != nil {
		return &pb.SignUpReply{Success: false, Message: message(err)}, nil
	}
	return &pb.SignUpReply{Success: true, Message: "Account created. You can now sign in."}, nil
}

func (s *ScoutService) SignIn(ctx context.Context, req *pb.AuthReq) (*pb.SignInReply, error) {
	token, err := s.ucUser.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return &pb.SignInReply{Success: false, Message: message(err)}, nil
	}
	return &pb.SignInReply{Success: true, Message: "Signed in.", Token: token}, nil
}

func (s *ScoutService) boardReply(b *biz.Board) *pb.BoardReply {
	return &pb.BoardReply{
		Points:    nonNil(b.Points),
		Sector:    b.Sector,
		Source:    string(b.Source),
		Scanning:  b.Scanning,
		Error:     b.Error,
		ScanId:    b.ScanID,
		Favorites: s.ucFavorite.FavoriteIDs(b.Points),
	}
}

// message 取业务错误的可读描述，未知错误不外泄细节
func message(err error) string {
	if e := errors.FromError(err); e != nil && e.Code != 500 {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

func nonNil(points []model.PainPoint) []model.PainPoint {
	if points == nil {
		return []model.PainPoint{}
	}
	return points
}
