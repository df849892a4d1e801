// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"context"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/store/blob"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/ratelimit"
	"github.com/dalemusser/employeehub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// Backend stores the employee collection.
	Backend blob.Backend

	// Set only for the backend that needs them.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	SQLite        *blob.SQLite

	// Services is created by ConnectDB and filled in by Startup, so the
	// later hooks (which receive DBDeps by value) share it.
	Services *Services
}

// Services are the long-lived app components built on top of the backend.
type Services struct {
	Store    *employeestore.Store
	Bundle   *i18n.Bundle
	Registry *confirm.Registry
	Cleanup  *workers.ConfirmCleanup
	Limiter  *ratelimit.Limiter // nil when write_rate_limit is 0

	stopWatch context.CancelFunc
}
