package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
api_token: secret
api_endpoint: https://api.example.com/v2
board_id: "42"
log_file: /tmp/claimdeck.log
cache_file: /tmp/cache.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, "https://api.example.com/v2", cfg.APIEndpoint)
	assert.Equal(t, "42", cfg.BoardID)
	assert.Equal(t, "/tmp/claimdeck.log", cfg.LogFile)
}

func TestLoadMissingTokenFails(t *testing.T) {
	path := writeConfig(t, `board_id: "42"`)
	_, err := Load(path)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `api_token: from-file`)
	t.Setenv("CLAIMDECK_API_TOKEN", "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIToken)
}

func TestEnvOnlyWorksWithoutFile(t *testing.T) {
	t.Setenv("CLAIMDECK_API_TOKEN", "env-token")
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.APIToken)
	assert.NotEmpty(t, cfg.LogFile)
	assert.NotEmpty(t, cfg.CacheFile)
}

func TestLoadRejectsBadEndpoint(t *testing.T) {
	path := writeConfig(t, `
api_token: secret
api_endpoint: not-a-url
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
