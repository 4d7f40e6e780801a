package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Remote     RemoteConfig     `yaml:"remote"`
	Generative GenerativeConfig `yaml:"generative"`
	Favorites  FavoritesConfig  `yaml:"favorites"`
	Log        LogConfig        `yaml:"log"`
	// PacingMS 每次扫描结束前的固定展示延迟（毫秒），负数表示关闭
	PacingMS int `yaml:"pacing_ms"`
}

// RemoteConfig 远程数据源配置
type RemoteConfig struct {
	Provider string         `yaml:"provider"` // postgres / supabase / none，留空按配置自动选择
	DB       DBConfig       `yaml:"db"`
	Supabase SupabaseConfig `yaml:"supabase"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// SupabaseConfig Supabase REST 配置
type SupabaseConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

// GenerativeConfig 生成式 AI 配置
type GenerativeConfig struct {
	Provider string `yaml:"provider"` // gemini / openai / none
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// FavoritesConfig 收藏持久化配置
type FavoritesConfig struct {
	Backend string `yaml:"backend"` // file / sqlite / memory
	Path    string `yaml:"path"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Pacing 返回展示延迟
func (c *Config) Pacing() time.Duration {
	if c.PacingMS < 0 {
		return 0
	}
	if c.PacingMS == 0 {
		return DefaultPacing
	}
	return time.Duration(c.PacingMS) * time.Millisecond
}

// DefaultPacing 默认展示延迟
const DefaultPacing = 1200 * time.Millisecond

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			DB: DBConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Generative: GenerativeConfig{
			Provider: "gemini",
			Model:    "gemini-3-flash-preview",
		},
		Favorites: FavoritesConfig{
			Backend: "file",
			Path:    "data",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig 从指定路径加载配置，并应用环境变量覆盖
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv 用 SCOUT_* 环境变量覆盖密钥类配置
func ApplyEnv(cfg *Config) {
	if v := firstEnv("SCOUT_GENERATIVE_API_KEY", "GEMINI_API_KEY", "API_KEY"); v != "" {
		cfg.Generative.APIKey = v
	}
	if v := os.Getenv("SCOUT_SUPABASE_URL"); v != "" {
		cfg.Remote.Supabase.URL = v
	}
	if v := os.Getenv("SCOUT_SUPABASE_KEY"); v != "" {
		cfg.Remote.Supabase.Key = v
	}
	if v := os.Getenv("SCOUT_DB_PASSWORD"); v != "" {
		cfg.Remote.DB.Password = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
