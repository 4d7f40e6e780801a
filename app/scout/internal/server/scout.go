package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/painpoint_scout/app/scout/internal/conf"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/engine"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/favorites"
	scoutLogger "github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
)

// ScoutConfig 将 internal/conf.Scout 转换为 pkg/config.Config，未配置的部分沿用默认值
func ScoutConfig(c *conf.Scout) *config.Config {
	cfg := config.Default()
	if c == nil {
		config.ApplyEnv(cfg)
		return cfg
	}
	if r := c.Remote; r != nil {
		if r.Provider != "" {
			cfg.Remote.Provider = r.Provider
		}
		if db := r.Db; db != nil {
			cfg.Remote.DB = config.DBConfig{
				Host:     db.Host,
				Port:     int(db.Port),
				User:     db.User,
				Password: db.Password,
				Name:     db.Name,
				SSLMode:  db.Sslmode,
			}
		}
		if sb := r.Supabase; sb != nil {
			cfg.Remote.Supabase = config.SupabaseConfig{URL: sb.Url, Key: sb.Key}
		}
	}
	if g := c.Generative; g != nil {
		cfg.Generative = config.GenerativeConfig{
			Provider: g.Provider,
			BaseURL:  g.BaseUrl,
			APIKey:   g.ApiKey,
			Model:    g.Model,
		}
	}
	if f := c.Favorites; f != nil {
		cfg.Favorites = config.FavoritesConfig{Backend: f.Backend, Path: f.Path}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	cfg.PacingMS = int(c.PacingMs)
	config.ApplyEnv(cfg)
	return cfg
}

// NewScoutEngine 初始化扫描引擎
func NewScoutEngine(c *conf.Scout, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	cfg := ScoutConfig(c)

	// 初始化日志
	if err := scoutLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init scout logger: %v", err)
		_ = scoutLogger.InitLogger("info", "") // 降级处理
	}

	eng, cleanup, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}
	return eng, func() {
		helper.Info("Cleaning up scout engine")
		cleanup()
	}, nil
}

// NewFavoriteStore 打开收藏存储并载入已有数据
func NewFavoriteStore(c *conf.Scout, logger log.Logger) (*favorites.Store, func(), error) {
	cfg := ScoutConfig(c)
	backend, cleanup, err := favorites.NewBackend(cfg.Favorites.Backend, cfg.Favorites.Path)
	if err != nil {
		return nil, nil, err
	}
	store := favorites.NewStore(backend)
	if err := store.Load(); err != nil {
		// 读取失败时从空列表开始
		log.NewHelper(logger).Warnf("load favorites: %v", err)
	}
	return store, cleanup, nil
}
