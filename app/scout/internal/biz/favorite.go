package biz

import (
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

var ErrInvalidPoint = errors.BadRequest("INVALID_POINT", "pain point id is required")

// FavoriteStore 收藏列表存储
type FavoriteStore interface {
	Toggle(p model.PainPoint) (bool, error)
	Contains(id string) bool
	List() []model.PainPoint
}

// FavoriteUseCase 收藏业务逻辑
type FavoriteUseCase struct {
	store FavoriteStore
	log   *log.Helper
}

func NewFavoriteUseCase(store FavoriteStore, logger log.Logger) *FavoriteUseCase {
	return &FavoriteUseCase{
		store: store,
		log:   log.NewHelper(logger),
	}
}

// Toggle 切换收藏状态，返回切换后是否已收藏。
// 持久化失败只记录日志，内存中的状态仍然生效。
func (uc *FavoriteUseCase) Toggle(p model.PainPoint) (bool, error) {
	if strings.TrimSpace(p.ID) == "" {
		return false, ErrInvalidPoint
	}
	fav, err := uc.store.Toggle(p)
	if err != nil {
		uc.log.Warnf("persist favorites: %v", err)
	}
	return fav, nil
}

// List 按收藏顺序返回收藏快照
func (uc *FavoriteUseCase) List() []model.PainPoint {
	return uc.store.List()
}

// FavoriteIDs 返回在 points 中已被收藏的 id
func (uc *FavoriteUseCase) FavoriteIDs(points []model.PainPoint) []string {
	ids := make([]string, 0, len(points))
	for _, p := range points {
		if uc.store.Contains(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
