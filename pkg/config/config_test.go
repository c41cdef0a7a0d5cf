package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv(environmentENV, "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "file::memory:?cache=shared", cfg.DatabaseFilePath)
	assert.Equal(t, 5, cfg.DatabaseConnectRetryCount)
	assert.Equal(t, 10*time.Second, cfg.CatalogFetchTimeout)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNewEnvironmentOverrides(t *testing.T) {
	t.Setenv(environmentENV, "test")
	t.Setenv("BLEND_SERVER_PORT", "4242")
	t.Setenv("BLEND_CATALOG_BASE_URL", "http://books.example.com/assets")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 4242, cfg.ServerPort)
	assert.Equal(t, "http://books.example.com/assets", cfg.CatalogBaseURL)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "server_port", envTransform("BLEND_SERVER_PORT"))
	assert.Equal(t, "catalog_base_url", envTransform("BLEND_CATALOG_BASE_URL"))
}
