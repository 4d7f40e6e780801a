package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/biz"
	"github.com/iWorld-y/painpoint_scout/app/scout/internal/data"
	"github.com/iWorld-y/painpoint_scout/app/scout/internal/service"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/engine"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/favorites"
)

// ProviderSet 是看板服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewScoutEngine,
	NewFavoriteStore,
	wire.Bind(new(biz.Scanner), new(*engine.Engine)),
	wire.Bind(new(biz.FavoriteStore), new(*favorites.Store)),

	// Data providers
	data.NewData,
	data.NewUserRepo,

	// UseCase providers
	biz.ProviderSet,

	// Service providers
	service.NewScoutService,
)
