package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rocketcart/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "GO_ENV", "LOG_LEVEL", "SEED_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoad_WithDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("PORT", "3333")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":3333", cfg.Addr())
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, 5432, cfg.PostgresPort)
}

func TestLoad_RequiresPostgresWithoutURL(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()
	assert.ErrorContains(t, err, "POSTGRES_USER is required")

	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "shop")
	t.Setenv("POSTGRES_PORT", "nope")
	_, err = config.Load()
	assert.ErrorContains(t, err, "POSTGRES_PORT must be number")

	t.Setenv("POSTGRES_PORT", "5433")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5433, cfg.PostgresPort)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SEED_FILE=seed.json\n"), 0o600))
	// godotenv は既にある値を上書きしない
	os.Unsetenv("SEED_FILE")
	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "seed.json", os.Getenv("SEED_FILE"))

	assert.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestClient_Validate(t *testing.T) {
	base := config.Client{
		APIURL:      "http://localhost:8080",
		HTTPTimeout: time.Second,
		Inventory:   "http",
		Store:       "file",
		File:        "cart.json",
	}
	assert.NoError(t, base.Validate())

	pg := base
	pg.Store = "postgres"
	assert.Error(t, pg.Validate())
	pg.DatabaseURL = "postgres://localhost/shop"
	assert.NoError(t, pg.Validate())

	noTimeout := base
	noTimeout.HTTPTimeout = 0
	assert.Error(t, noTimeout.Validate())

	noURL := base
	noURL.APIURL = ""
	assert.Error(t, noURL.Validate())
}
