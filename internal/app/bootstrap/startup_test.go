package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/employeehub/internal/app/store/blob"
	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		StorageBackend:  blob.KindMemory,
		StorageKey:      employeestore.StorageKey,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "employeehub",
		SessionName:     "employeehub-ui",
		PageSize:        12,
		DefaultLanguage: "en",
		ConfirmIdleTTL:  time.Minute,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults", "dev", func(*AppConfig) {}, ""},
		{"unknown backend", "dev", func(c *AppConfig) { c.StorageBackend = "postgres" }, "storage_backend"},
		{"mongo without database", "dev", func(c *AppConfig) {
			c.StorageBackend = blob.KindMongo
			c.MongoDatabase = ""
		}, "mongo_database"},
		{"zero page size", "dev", func(c *AppConfig) { c.PageSize = 0 }, "page_size"},
		{"negative latency", "dev", func(c *AppConfig) { c.Latency = -time.Second }, "latency"},
		{"negative rate limit", "dev", func(c *AppConfig) { c.WriteRateLimit = -1 }, "write_rate_limit"},
		{"zero ttl", "dev", func(c *AppConfig) { c.ConfirmIdleTTL = 0 }, "confirm_idle_ttl"},
		{"unsupported language", "dev", func(c *AppConfig) { c.DefaultLanguage = "fr" }, "default_language"},
		{"short prod session key", "prod", func(c *AppConfig) { c.SessionKey = "short" }, "session_key"},
		{"prod session key", "prod", func(c *AppConfig) { c.SessionKey = strings.Repeat("k", 32) }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConnectDB_Memory(t *testing.T) {
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, validConfig(), testLogger())
	require.NoError(t, err)
	assert.IsType(t, &blob.Memory{}, deps.Backend)
	assert.NotNil(t, deps.Services)
	assert.Nil(t, deps.MongoClient)
	assert.NoError(t, EnsureSchema(context.Background(), &config.CoreConfig{}, validConfig(), deps, testLogger()))
}

func TestConnectDB_SQLite(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBackend = blob.KindSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "employeehub.db")

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Backend.Close() })

	require.NotNil(t, deps.SQLite)
	assert.NoError(t, deps.SQLite.Ping(context.Background()))
}

func TestConnectDB_File(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBackend = blob.KindFile
	cfg.StoragePath = t.TempDir()

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &blob.File{}, deps.Backend)
}

func TestConnectDB_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StorageBackend = "postgres"
	_, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	assert.Error(t, err)
}

func TestStartupAndShutdown(t *testing.T) {
	ctx := context.Background()
	core := &config.CoreConfig{Env: "dev"}
	cfg := validConfig()
	cfg.DefaultLanguage = "tr"

	deps, err := ConnectDB(ctx, core, cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, Startup(ctx, core, cfg, deps, testLogger()))

	svc := deps.Services
	require.NotNil(t, svc.Store)
	assert.Equal(t, len(employeestore.SeedData()), svc.Store.Count())
	assert.Equal(t, "tr", svc.Bundle.Default())
	assert.NotNil(t, svc.Registry)
	assert.NotNil(t, svc.Cleanup)

	assert.NoError(t, Shutdown(ctx, core, cfg, deps, testLogger()))
	// Stop is idempotent, so a second shutdown is harmless.
	assert.NoError(t, Shutdown(ctx, core, cfg, deps, testLogger()))
}

func TestStartup_WithoutServices(t *testing.T) {
	err := Startup(context.Background(), &config.CoreConfig{}, validConfig(), DBDeps{Backend: blob.NewMemory()}, testLogger())
	assert.Error(t, err)
}

func TestBuildHandler_RequiresStartup(t *testing.T) {
	_, err := BuildHandler(&config.CoreConfig{}, validConfig(), DBDeps{}, testLogger())
	assert.Error(t, err)
}
