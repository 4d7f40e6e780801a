package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SCOUT_GENERATIVE_API_KEY", "GEMINI_API_KEY", "API_KEY", "SCOUT_SUPABASE_URL", "SCOUT_SUPABASE_KEY", "SCOUT_DB_PASSWORD"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
remote:
  provider: postgres
  db:
    host: db.local
    port: 6543
    user: scout
    name: scout
generative:
  provider: openai
  base_url: https://llm.local/v1
  api_key: file-key
  model: mimo
favorites:
  backend: sqlite
  path: /tmp/fav
pacing_ms: 300
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Remote.Provider)
	assert.Equal(t, "db.local", cfg.Remote.DB.Host)
	assert.Equal(t, 6543, cfg.Remote.DB.Port)
	assert.Equal(t, "disable", cfg.Remote.DB.SSLMode, "default kept when not set")
	assert.Equal(t, "openai", cfg.Generative.Provider)
	assert.Equal(t, "file-key", cfg.Generative.APIKey)
	assert.Equal(t, "sqlite", cfg.Favorites.Backend)
	assert.Equal(t, 300*time.Millisecond, cfg.Pacing())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-env")
	t.Setenv("SCOUT_DB_PASSWORD", "secret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-env", cfg.Generative.APIKey)
	assert.Equal(t, "secret", cfg.Remote.DB.Password)

	t.Setenv("SCOUT_GENERATIVE_API_KEY", "scout-env")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "scout-env", cfg.Generative.APIKey)
}

func TestPacing(t *testing.T) {
	tests := []struct {
		ms   int
		want time.Duration
	}{
		{0, DefaultPacing},
		{-1, 0},
		{50, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		c := &Config{PacingMS: tt.ms}
		if got := c.Pacing(); got != tt.want {
			t.Errorf("Pacing(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault_RemoteProviderUnset(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Remote.Provider)

	t.Setenv("SCOUT_SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SCOUT_SUPABASE_KEY", "anon")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Remote.Provider)
	assert.Equal(t, "https://x.supabase.co", cfg.Remote.Supabase.URL)
}
