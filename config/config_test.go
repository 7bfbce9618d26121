package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HOST", "PORT", "DATA_DIR", "STORE_BACKEND", "ID_STRATEGY", "ALLOWED_ORIGINS",
	"WEB_HOST", "WEB_PORT", "WEB_INDEX_FILE", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.APIAddr())
	assert.Equal(t, "0.0.0.0:3000", cfg.WebAddr())
	assert.Equal(t, "json", cfg.API.StoreBackend)
	assert.Equal(t, "last", cfg.API.IDStrategy)
	assert.Equal(t, []string{"*"}, cfg.API.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[api]
port = "9090"
data_dir = "/var/lib/items"
store_backend = "sqlite"
allowed_origins = ["https://a.example", "https://b.example"]
id_strategy = "max"

[web]
port = "3001"
index_file = "/srv/index.html"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.APIAddr())
	assert.Equal(t, "/var/lib/items", cfg.API.DataDir)
	assert.Equal(t, "sqlite", cfg.API.StoreBackend)
	assert.Equal(t, "max", cfg.API.IDStrategy)
	assert.Len(t, cfg.API.AllowedOrigins, 2)
	assert.Equal(t, "/srv/index.html", cfg.Web.IndexFile)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[api]\nport = \"9090\"\n")
	t.Setenv("PORT", "7070")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.API.Port)
	assert.Equal(t, "memory", cfg.API.StoreBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.AllowedOrigins)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	t.Run("bad backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "redis")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store_backend")
	})

	t.Run("bad id strategy", func(t *testing.T) {
		path := writeConfig(t, "[api]\nid_strategy = \"random\"\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be one of")
	})

	t.Run("bad toml", func(t *testing.T) {
		path := writeConfig(t, "[api\nport = ")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to parse config file"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	cfg.NewLogger(&buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.Log.Level = "error"
	cfg.NewLogger(&buf).Info("dropped")
	assert.Empty(t, buf.String())
}
