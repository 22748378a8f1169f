// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/auditlog"
	"github.com/dalemusser/pmhub/internal/app/system/inputval"
	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minJWTSecretLen is the shortest HS256 secret we accept.
const minJWTSecretLen = 32

// appConfigKeys defines the configuration keys for pmhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: PMHUB_MONGO_URI, PMHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pmhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_op_timeout", Default: "10s", Desc: "Per-operation MongoDB timeout (0 for driver default)"},

	{Name: "jwt_secret", Default: "", Desc: "HMAC secret for verifying bearer tokens (32+ chars)"},
	{Name: "session_key", Default: "", Desc: "Session signing key (blank = ephemeral)"},
	{Name: "session_name", Default: "pmhub-session", Desc: "Session cookie name"},
	{Name: "admin_email", Default: "", Desc: "Email of a user to promote/create as admin on startup"},

	{Name: "search_scope_policy", Default: "replace", Desc: "Developer search vs. scope: 'replace' or 'combine'"},
	{Name: "default_page_limit", Default: paging.DefaultLimit, Desc: "Default page size for list endpoints"},
	{Name: "max_page_limit", Default: paging.MaxLimit, Desc: "Largest page size a client may request"},

	{Name: "cascade_repair_interval", Default: "5m", Desc: "How often to repair orphaned live tasks (0 disables)"},
	{Name: "repair_timeout", Default: "60s", Desc: "Timeout for one cascade repair pass"},
	{Name: "ping_timeout", Default: "2s", Desc: "Timeout for health-check database pings"},

	{Name: "audit_log", Default: "all", Desc: "Audit logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_file", Default: "", Desc: "Optional file for audit events (rotated)"},

	{Name: "static_dir", Default: "", Desc: "Directory of the built client to serve (blank = API only)"},
	{Name: "cors_origins", Default: "http://localhost:3000", Desc: "Comma-separated allowed CORS origins"},
	{Name: "rate_limit_per_minute", Default: 120, Desc: "Mutating requests per minute per client IP (0 = unlimited)"},

	{Name: "breaker_max_failures", Default: 5, Desc: "Consecutive store failures before the breaker opens (0 = disabled)"},
	{Name: "breaker_open_for", Default: "10s", Desc: "How long the breaker stays open before probing"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PMHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PMHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		MongoOpTimeout:   appValues.Duration("mongo_op_timeout", 10*time.Second),

		JWTSecret:   appValues.String("jwt_secret"),
		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),
		AdminEmail:  appValues.String("admin_email"),

		SearchScopePolicy: projectquery.ScopePolicy(strings.ToLower(strings.TrimSpace(appValues.String("search_scope_policy")))),
		DefaultPageLimit:  appValues.Int("default_page_limit"),
		MaxPageLimit:      appValues.Int("max_page_limit"),

		CascadeRepairInterval: appValues.Duration("cascade_repair_interval", 5*time.Minute),
		RepairTimeout:         appValues.Duration("repair_timeout", 60*time.Second),
		PingTimeout:           appValues.Duration("ping_timeout", 2*time.Second),

		AuditLog:     strings.ToLower(strings.TrimSpace(appValues.String("audit_log"))),
		AuditLogFile: appValues.String("audit_log_file"),

		StaticDir:          appValues.String("static_dir"),
		CORSOrigins:        splitList(appValues.String("cors_origins")),
		RateLimitPerMinute: appValues.Int("rate_limit_per_minute"),

		BreakerMaxFailures: appValues.Int("breaker_max_failures"),
		BreakerOpenFor:     appValues.Duration("breaker_open_for", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// pmhub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects values the handlers
// cannot interpret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(appCfg)
}

// validateApp holds the checks that need no logger or core config.
func validateApp(appCfg AppConfig) error {
	if len(appCfg.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("jwt_secret must be at least %d characters", minJWTSecretLen)
	}
	if _, ok := projectquery.ParseScopePolicy(string(appCfg.SearchScopePolicy)); !ok {
		return fmt.Errorf("search_scope_policy must be 'replace' or 'combine', got %q", appCfg.SearchScopePolicy)
	}
	if !auditlog.ValidMode(appCfg.AuditLog) {
		return fmt.Errorf("audit_log must be one of all, db, log, off; got %q", appCfg.AuditLog)
	}
	if appCfg.DefaultPageLimit < 1 || appCfg.MaxPageLimit < appCfg.DefaultPageLimit {
		return fmt.Errorf("page limits invalid: default=%d max=%d", appCfg.DefaultPageLimit, appCfg.MaxPageLimit)
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.AdminEmail != "" && !inputval.IsValidEmail(appCfg.AdminEmail) {
		return fmt.Errorf("admin_email is not a valid email address: %q", appCfg.AdminEmail)
	}
	if appCfg.RateLimitPerMinute < 0 || appCfg.BreakerMaxFailures < 0 {
		return fmt.Errorf("rate_limit_per_minute and breaker_max_failures must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
