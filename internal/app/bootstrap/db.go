// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dalemusser/employeehub/internal/app/store/blob"
	"github.com/dalemusser/employeehub/internal/app/system/indexes"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured storage backend.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{Services: &Services{}}

	switch appCfg.StorageBackend {
	case blob.KindMemory:
		logger.Warn("using in-memory employee storage; changes are lost on restart")
		deps.Backend = blob.NewMemory()

	case blob.KindFile:
		f, err := blob.NewFile(appCfg.StoragePath, logger)
		if err != nil {
			return DBDeps{}, err
		}
		deps.Backend = f

	case blob.KindSQLite:
		if err := os.MkdirAll(filepath.Dir(appCfg.SQLitePath), 0o755); err != nil {
			return DBDeps{}, fmt.Errorf("create sqlite directory: %w", err)
		}
		s, err := blob.OpenSQLite(ctx, appCfg.SQLitePath)
		if err != nil {
			return DBDeps{}, err
		}
		deps.SQLite = s
		deps.Backend = s

	case blob.KindMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Backend = blob.NewMongo(deps.MongoDatabase)

	default:
		return DBDeps{}, fmt.Errorf("unknown storage backend %q", appCfg.StorageBackend)
	}

	logger.Info("employee storage opened", zap.String("backend", appCfg.StorageBackend))
	return deps, nil
}

// EnsureSchema sets up indexes for the mongo backend. The sqlite table is
// created when the database is opened; the other backends have no schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	return indexes.EnsureAll(ctx, deps.MongoDatabase, logger)
}
