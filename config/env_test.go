package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		overrides = map[string]string{}
		mu.Unlock()
	})
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: \"9090\"\nSTORE_DRIVER: memory\nJWT_ACCESS_TTL: 15m\n"), 0o644))
	t.Setenv("MONGO_DATABASE", "catalog_test")

	require.NoError(t, load(path))

	assert.Equal(t, "9090", get("APP_PORT", ""))
	assert.Equal(t, "memory", get("STORE_DRIVER", ""))
	assert.Equal(t, "catalog_test", get("MONGO_DATABASE", ""))
	assert.Equal(t, "public", get("STORAGE_LOCAL_ROOT", ""), "defaults survive")
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	reset(t)
	require.NoError(t, load(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, defaultMongoDatabase, get("MONGO_DATABASE", ""))
}

func TestTypedHelpers(t *testing.T) {
	reset(t)
	Set("rate_limit_per_minute", "30")
	Set("JWT_REFRESH_TTL", "not-a-duration")
	Set("LOG_TO_MONGO", "true")
	Set("STORE_DRIVER", "postgres")
	Set("APP_ENV", "Production")

	assert.Equal(t, 30, RateLimitPerMinute())
	assert.Equal(t, 7*24*time.Hour, JWTRefreshTTL())
	assert.True(t, LogToMongo())
	assert.Equal(t, "mongo", StoreDriver(), "unknown drivers fall back to mongo")
	assert.True(t, IsProduction())
}
