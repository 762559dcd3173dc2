package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LEADGEN_ADDR", "LEADGEN_MODEL", "LEADGEN_DB", "GROQ_API_KEY", "TAVILY_API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.GroqAPIKey)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "leadgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
model: llama3-70b-8192
db_path: /tmp/leadgen.db
groq_api_key: gsk_file
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "llama3-70b-8192", cfg.Model)
	assert.Equal(t, "/tmp/leadgen.db", cfg.DBPath)
	assert.Equal(t, "gsk_file", cfg.GroqAPIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "leadgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\ngroq_api_key: gsk_file\n"), 0600))

	t.Setenv("LEADGEN_ADDR", ":7777")
	t.Setenv("GROQ_API_KEY", "gsk_env")
	t.Setenv("TAVILY_API_KEY", "tvly_env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, "gsk_env", cfg.GroqAPIKey)
	assert.Equal(t, "tvly_env", cfg.TavilyAPIKey)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
