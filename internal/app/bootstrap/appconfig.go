// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig keeps the
// framework-level settings (ports, TLS, logging, CORS); everything specific
// to EmployeeHub lives here.
type AppConfig struct {
	// Employee storage
	StorageBackend string // file, mongo, sqlite or memory
	StoragePath    string // directory of the file backend
	StorageKey     string // key the employee collection is stored under
	SQLitePath     string // database file of the sqlite backend

	// MongoDB connection configuration (mongo backend only)
	MongoURI      string
	MongoDatabase string

	// UI-state cookie configuration
	SessionKey    string // Secret key for signing the cookie (must be strong in production)
	SessionName   string // Cookie name (default: employeehub-ui)
	SessionDomain string // Cookie domain (blank means current host)

	// Employee list and service behavior
	PageSize        int           // rows per list page
	Latency         time.Duration // simulated latency of every service call
	DefaultLanguage string        // language used when the browser expresses no preference

	// ConfirmIdleTTL is how long an unanswered dialog survives per session.
	ConfirmIdleTTL time.Duration

	// WriteRateLimit caps state-changing requests per client IP per minute.
	// Zero disables the limit.
	WriteRateLimit int
}
