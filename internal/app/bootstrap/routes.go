// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	confirmfeature "github.com/dalemusser/employeehub/internal/app/features/confirm"
	employeesfeature "github.com/dalemusser/employeehub/internal/app/features/employees"
	errorsfeature "github.com/dalemusser/employeehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/employeehub/internal/app/features/health"
	languagefeature "github.com/dalemusser/employeehub/internal/app/features/language"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/ratelimit"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, storage, schema setup, and the
// Startup hook have completed. EmployeeHub boots the template engine,
// applies the UI-state middleware, and mounts the feature routers: health,
// confirmation answers, language switching, and the employee pages at the
// site root.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := deps.Services
	if svc == nil || svc.Store == nil {
		return nil, fmt.Errorf("build handler: startup did not complete")
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionKey := appCfg.SessionKey
	if sessionKey == "" {
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("generate session key")
		}
		sessionKey = string(key)
		logger.Warn("session_key not set; using a random key, UI state resets on restart")
	}
	ui, err := uistate.NewManager(sessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("ui state manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	viewdata.Init(svc.Bundle, svc.Registry)
	svc.Registry.OnCreate(func(sessionID string, c *confirm.Coordinator) {
		c.Subscribe(func(st confirm.State) {
			if st.Open {
				logger.Debug("confirmation opened",
					zap.String("session", sessionID),
					zap.String("id", st.Request.ID),
					zap.String("action", st.Request.Action))
			}
		})
	})

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Loads (or starts) the UI state of every request.
	r.Use(ui.Middleware)

	if appCfg.WriteRateLimit > 0 {
		svc.Limiter = ratelimit.New(appCfg.WriteRateLimit, time.Minute)
		r.Use(svc.Limiter.Writes(logger))
	}

	// Registered before any Mount so mounted subrouters inherit it.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	var pinger healthfeature.Pinger
	switch {
	case deps.MongoClient != nil:
		pinger = healthfeature.MongoPinger{Client: deps.MongoClient}
	case deps.SQLite != nil:
		pinger = deps.SQLite
	}
	healthHandler := healthfeature.NewHandler(appCfg.StorageBackend, pinger, svc.Store, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Employee pages and the confirmation actions they answer.
	actions := confirm.NewActions()
	employeesHandler := employeesfeature.NewHandler(svc.Store, ui, svc.Registry, errLog, logger, appCfg.PageSize)
	employeesHandler.RegisterActions(actions)

	confirmHandler := confirmfeature.NewHandler(svc.Registry, actions, logger)
	r.Mount("/confirm", confirmfeature.Routes(confirmHandler))

	languageHandler := languagefeature.NewHandler(svc.Bundle, ui, logger)
	languageHandler.Events.AddListener(events.LanguageChange, func(e *events.Event) {
		if c, ok := e.Detail.(languagefeature.Change); ok {
			logger.Info("language selected", zap.String("lang", c.Language), zap.String("session", c.SessionID))
		}
	})
	r.Mount("/language", languagefeature.Routes(languageHandler))

	r.Mount("/", employeesfeature.Routes(employeesHandler))

	return r, nil
}
