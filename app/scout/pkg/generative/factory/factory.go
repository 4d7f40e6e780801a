package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative/eino"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/generative/gemini"
)

// NewGenerator 根据配置创建生成式数据源。
// provider 为 none 或未配置密钥时返回 nil，调用方将第二级视为不可用。
func NewGenerator(ctx context.Context, cfg config.GenerativeConfig) (generative.Generator, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "gemini"
	}
	if provider == "none" || cfg.APIKey == "" {
		return nil, nil
	}

	switch provider {
	case "gemini":
		c, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	case "openai":
		if cfg.Model == "" {
			return nil, fmt.Errorf("openai model is missing")
		}
		c, err := eino.NewClient(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown generative provider: %s", provider)
	}
}
