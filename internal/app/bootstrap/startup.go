// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/employeehub/internal/app/resources"
	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// cleanupInterval is how often abandoned confirmation dialogs are swept.
const cleanupInterval = time.Minute

// Startup runs one-time application initialization after the backend is
// open and its schema is in place, but before the HTTP handler is built.
// It loads the shared templates and catalogs, loads (or seeds) the employee
// collection, and starts the background workers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	svc := deps.Services
	if svc == nil {
		return fmt.Errorf("startup: services not initialized")
	}

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	if err := bundle.SetDefault(appCfg.DefaultLanguage); err != nil {
		return err
	}
	bundle.Subscribe(func(lang string) {
		logger.Debug("language changed", zap.String("lang", lang))
	})

	store, err := employeestore.New(ctx, deps.Backend, employeestore.Options{
		Key:     appCfg.StorageKey,
		Latency: appCfg.Latency,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("load employees: %w", err)
	}

	// The watch outlives ctx, which only covers startup.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	watching, err := store.Watch(watchCtx)
	if err != nil {
		stopWatch()
		return err
	}
	if watching {
		logger.Info("watching employee storage for outside changes")
	}

	registry := confirm.NewRegistry(appCfg.ConfirmIdleTTL)
	cleanup := workers.NewConfirmCleanup(registry, logger, cleanupInterval)
	cleanup.Start()

	svc.Store = store
	svc.Bundle = bundle
	svc.Registry = registry
	svc.Cleanup = cleanup
	svc.stopWatch = stopWatch

	logger.Info("employeehub started",
		zap.Int("employees", store.Count()),
		zap.Int("page_size", appCfg.PageSize),
		zap.Duration("latency", appCfg.Latency),
		zap.String("default_language", bundle.Default()))
	return nil
}
