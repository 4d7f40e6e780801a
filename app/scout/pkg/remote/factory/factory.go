package factory

import (
	"fmt"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote/postgres"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote/supabase"
)

// NewQuerier 根据配置创建远程数据源。
// provider 为 none 时返回 nil，调用方将第一级视为不可用。
func NewQuerier(cfg config.RemoteConfig) (remote.Querier, func(), error) {
	provider := cfg.Provider
	if provider == "" {
		// 默认回退逻辑：配置了 supabase 地址则使用 supabase，配置了数据库主机则使用 postgres
		switch {
		case cfg.Supabase.URL != "":
			provider = "supabase"
		case cfg.DB.Host != "" && cfg.DB.Name != "":
			provider = "postgres"
		default:
			provider = "none"
		}
	}

	switch provider {
	case "none":
		return nil, func() {}, nil

	case "postgres":
		store, err := postgres.NewStorage(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "supabase":
		c, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown remote provider: %s", provider)
	}
}
