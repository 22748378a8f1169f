// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports, TLS,
// logging level and request body limits. Everything specific to pmhub lives
// here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string        // Database name within MongoDB
	MongoMaxPoolSize uint64        // Max connections in the driver pool
	MongoMinPoolSize uint64        // Connections kept warm
	MongoOpTimeout   time.Duration // Client-wide per-operation timeout (0 = driver default)

	// Identity
	JWTSecret   string // HMAC secret shared with the auth service
	SessionKey  string // Secret key for signing session cookies
	SessionName string // Cookie name for sessions (default: pmhub-session)
	AdminEmail  string // Promoted to (or created as) admin on startup

	// Project listing
	SearchScopePolicy projectquery.ScopePolicy // replace | combine
	DefaultPageLimit  int
	MaxPageLimit      int

	// Background work
	CascadeRepairInterval time.Duration // 0 disables the worker
	RepairTimeout         time.Duration
	PingTimeout           time.Duration

	// Audit logging
	AuditLog     string // all | db | log | off
	AuditLogFile string // optional rotated JSON-lines file

	// HTTP surface
	StaticDir          string   // built SPA to serve in production (blank = API only)
	CORSOrigins        []string // allowed origins for the SPA in development
	RateLimitPerMinute int      // mutating requests per client IP (0 = unlimited)

	// Store circuit breaker
	BreakerMaxFailures int           // consecutive failures before opening (0 = disabled)
	BreakerOpenFor     time.Duration // how long the breaker stays open before probing
}
