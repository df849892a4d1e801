// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/store/blob"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EmployeeHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: storage_backend, session_name, etc.
//   - Environment variables: EMPLOYEEHUB_STORAGE_BACKEND, EMPLOYEEHUB_SESSION_NAME, etc.
//   - Command-line flags: --storage_backend, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "storage_backend", Default: blob.KindFile, Desc: "Employee storage: 'file', 'mongo', 'sqlite' or 'memory'"},
	{Name: "storage_path", Default: "./data", Desc: "Directory used by the file backend"},
	{Name: "storage_key", Default: employeestore.StorageKey, Desc: "Key the employee collection is stored under"},
	{Name: "sqlite_path", Default: "./data/employeehub.db", Desc: "Database file used by the sqlite backend"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend)"},
	{Name: "mongo_database", Default: "employeehub", Desc: "MongoDB database name (mongo backend)"},

	{Name: "session_key", Default: "", Desc: "UI-state cookie signing key (random per process when empty in dev)"},
	{Name: "session_name", Default: "employeehub-ui", Desc: "UI-state cookie name"},
	{Name: "session_domain", Default: "", Desc: "UI-state cookie domain (blank means current host)"},

	{Name: "page_size", Default: employeestore.DefaultPageSize, Desc: "Employees per list page"},
	{Name: "latency", Default: employeestore.DefaultLatency.String(), Desc: "Simulated latency of each employee service call (e.g., 300ms, 0s)"},
	{Name: "default_language", Default: i18n.Fallback, Desc: "Language used when the browser expresses no preference"},
	{Name: "confirm_idle_ttl", Default: "30m", Desc: "How long an unanswered confirmation dialog is kept per session"},
	{Name: "write_rate_limit", Default: 120, Desc: "Max POST requests per client IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, EMPLOYEEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
//
// Handler timeouts are read separately from EMPLOYEEHUB_TIMEOUT_*.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EMPLOYEEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StorageBackend: appValues.String("storage_backend"),
		StoragePath:    appValues.String("storage_path"),
		StorageKey:     appValues.String("storage_key"),
		SQLitePath:     appValues.String("sqlite_path"),
		MongoURI:       appValues.String("mongo_uri"),
		MongoDatabase:  appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		PageSize:        appValues.Int("page_size"),
		Latency:         appValues.Duration("latency", employeestore.DefaultLatency),
		DefaultLanguage: appValues.String("default_language"),
		ConfirmIdleTTL:  appValues.Duration("confirm_idle_ttl", 30*time.Minute),
		WriteRateLimit:  appValues.Int("write_rate_limit"),
	}

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("handler timeouts configured from environment",
			zap.Int("count", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("batch", cur.Batch))
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The Mongo URI is only checked when the mongo backend is selected.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !blob.ValidKind(appCfg.StorageBackend) {
		return fmt.Errorf("storage_backend %q is not one of %v", appCfg.StorageBackend, blob.Kinds)
	}
	if appCfg.StorageBackend == blob.KindMongo {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required with the mongo backend")
		}
	}
	if appCfg.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", appCfg.PageSize)
	}
	if appCfg.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %s", appCfg.Latency)
	}
	if appCfg.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must not be negative, got %d", appCfg.WriteRateLimit)
	}
	if appCfg.ConfirmIdleTTL <= 0 {
		return fmt.Errorf("confirm_idle_ttl must be positive, got %s", appCfg.ConfirmIdleTTL)
	}

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	if !bundle.Supported(appCfg.DefaultLanguage) {
		return fmt.Errorf("default_language %q is not one of %v", appCfg.DefaultLanguage, bundle.Languages())
	}

	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}
	return nil
}
