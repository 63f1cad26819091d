package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, RendererBrowser, cfg.Renderer.Strategy)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  base_url: "http://app:9000"
database:
  url: "postgres://user:pass@db/contracts"
renderer:
  strategy: slicer
telegram:
  bot_token: "tok"
  chat_id: "-100"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "http://app:9000", cfg.Server.BaseURL)
	assert.Equal(t, "postgres://user:pass@db/contracts", cfg.Database.URL)
	assert.Equal(t, RendererSlicer, cfg.Renderer.Strategy)
	assert.Equal(t, "tok", cfg.Telegram.BotToken)
	assert.Equal(t, "-100", cfg.Telegram.ChatID)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644))

	t.Setenv("SHARTNOMA_ADDR", ":7777")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("SHARTNOMA_RENDERER", RendererSlicer)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.Equal(t, RendererSlicer, cfg.Renderer.Strategy)
}

func TestUnknownRendererRejected(t *testing.T) {
	t.Setenv("SHARTNOMA_RENDERER", "etcher")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "unknown renderer strategy")
}
