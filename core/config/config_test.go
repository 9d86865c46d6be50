package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "2024-01", cfg.Shopify.ApiVersion)
	assert.Equal(t, "reports", cfg.Storage.Bucket)
	assert.Equal(t, "tracking", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHOPIFY_DOMAIN", "demo.myshopify.com")
	t.Setenv("DATABASE_PORT", "3307")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "demo.myshopify.com", cfg.Shopify.Domain)
	assert.Equal(t, 3307, cfg.Database.Port)
}
