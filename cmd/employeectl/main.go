// Command employeectl inspects and maintains the employee collection
// that employeehub serves, using the same storage backends and settings.
//
// Usage:
//
//	employeectl list --department 2 --q smith
//	employeectl export --format csv -o employees.csv
//	employeectl import employees.csv
//	employeectl delete 4 9
//	employeectl reset
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/employeehub/internal/app/bootstrap"
	"github.com/dalemusser/employeehub/internal/app/store/blob"
	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	storage bootstrap.AppConfig
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "employeectl",
	Short: "Maintain the employeehub employee collection",
	Long: `employeectl reads and writes the employee collection directly in the
configured storage backend (file, sqlite, mongo). Flags default to the
EMPLOYEEHUB_* environment variables the server reads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	f.StringVar(&storage.StorageBackend, "backend", envOr("STORAGE_BACKEND", blob.KindFile), "Storage backend: file, sqlite or mongo")
	f.StringVar(&storage.StoragePath, "path", envOr("STORAGE_PATH", "./data"), "Directory used by the file backend")
	f.StringVar(&storage.StorageKey, "key", envOr("STORAGE_KEY", employeestore.StorageKey), "Key the collection is stored under")
	f.StringVar(&storage.SQLitePath, "sqlite", envOr("SQLITE_PATH", "./data/employeehub.db"), "Database file used by the sqlite backend")
	f.StringVar(&storage.MongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	f.StringVar(&storage.MongoDatabase, "mongo-db", envOr("MONGO_DATABASE", "employeehub"), "MongoDB database name")
	f.DurationVar(&timeout, "timeout", 0, "Operation timeout (default: the batch timeout)")

	rootCmd.AddCommand(listCmd, addCmd, deleteCmd, exportCmd, importCmd, resetCmd)
}

func envOr(name, def string) string {
	if v := os.Getenv("EMPLOYEEHUB_" + name); v != "" {
		return v
	}
	return def
}

// withStore opens the backend, loads the collection and runs fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *employeestore.Store) error) error {
	if storage.StorageBackend == blob.KindMemory {
		return fmt.Errorf("the memory backend only exists inside a running server")
	}
	if !blob.ValidKind(storage.StorageBackend) {
		return fmt.Errorf("unknown backend %q (want one of %v)", storage.StorageBackend, blob.Kinds)
	}

	timeouts.ConfigureFromEnv()
	d := timeout
	if d <= 0 {
		d = timeouts.Batch()
	}
	ctx, cancel := timeouts.WithTimeout(cmd.Context(), d, logger, cmd.Name())
	defer cancel()

	core := &config.CoreConfig{}
	deps, err := bootstrap.ConnectDB(ctx, core, storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := bootstrap.Shutdown(context.Background(), core, storage, deps, logger); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()
	if err := bootstrap.EnsureSchema(ctx, core, storage, deps, logger); err != nil {
		return err
	}

	s, err := employeestore.New(ctx, deps.Backend, employeestore.Options{
		Key:    storage.StorageKey,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
