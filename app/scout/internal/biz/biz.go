package biz

import "github.com/google/wire"

// ProviderSet 业务层 Provider 集合
var ProviderSet = wire.NewSet(NewUserUseCase, NewScanUseCase, NewFavoriteUseCase)
