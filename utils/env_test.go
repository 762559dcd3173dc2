package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnvFile(t, `
# credentials
GROQ_API_KEY=gsk_test
TAVILY_API_KEY="tvly-test"

LEADGEN_ADDR = :9090
`)
	t.Setenv("GROQ_API_KEY", "")
	os.Unsetenv("GROQ_API_KEY")
	t.Setenv("TAVILY_API_KEY", "")
	os.Unsetenv("TAVILY_API_KEY")
	t.Setenv("LEADGEN_ADDR", "")
	os.Unsetenv("LEADGEN_ADDR")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "gsk_test", os.Getenv("GROQ_API_KEY"))
	assert.Equal(t, "tvly-test", os.Getenv("TAVILY_API_KEY"))
	assert.Equal(t, ":9090", os.Getenv("LEADGEN_ADDR"))
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	path := writeEnvFile(t, "GROQ_API_KEY=from_file\n")
	t.Setenv("GROQ_API_KEY", "from_env")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from_env", os.Getenv("GROQ_API_KEY"))
}

func TestLoadEnvFileInvalidLine(t *testing.T) {
	path := writeEnvFile(t, "not a pair\n")
	assert.Error(t, LoadEnvFile(path))
}

func TestLoadEnvFileMissing(t *testing.T) {
	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
