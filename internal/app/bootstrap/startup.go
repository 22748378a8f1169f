// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/pmhub/internal/app/store/audit"
	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	taskstore "github.com/dalemusser/pmhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/pmhub/internal/app/store/users"
	"github.com/dalemusser/pmhub/internal/app/system/auditlog"
	"github.com/dalemusser/pmhub/internal/app/system/breaker"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/app/system/timeouts"
	"github.com/dalemusser/pmhub/internal/app/system/workers"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// pmhub configures timeouts, builds the store circuit breaker and the audit
// logger, ensures the bootstrap admin, and starts the cascade repair worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime == nil {
		return errors.New("startup: runtime not initialized")
	}
	rt := deps.Runtime
	db := deps.MongoDatabase

	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.PingTimeout,
		Repair: appCfg.RepairTimeout,
	})

	rt.Breaker = breaker.New("mongo", uint32(appCfg.BreakerMaxFailures), appCfg.BreakerOpenFor, logger)
	rt.AuditLog = auditlog.New(audit.New(db), logger, auditlog.Config{
		Mode: appCfg.AuditLog,
		File: appCfg.AuditLogFile,
	})

	if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	// The worker is always built so the admin endpoint can run a pass on
	// demand; the loop only starts when an interval is configured.
	rt.Repair = workers.NewCascadeRepair(taskstore.New(db), projectstore.New(db), rt.AuditLog, logger, appCfg.CascadeRepairInterval)
	if appCfg.CascadeRepairInterval > 0 {
		rt.Repair.Start()
		rt.repairRunning = true
	} else {
		logger.Info("cascade repair worker disabled")
	}

	return nil
}

// ensureAdmin promotes the user with email to admin, or creates one when
// none exists. A blank email is a no-op. The new user has no password
// hash; authentication is handled by the external auth service.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	if email == "" {
		return nil
	}
	users := userstore.New(deps.MongoDatabase)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == "admin" {
			logger.Debug("bootstrap admin already present", zap.String("email", email))
			return nil
		}
		if err := users.SetRole(ctx, existing.ID, "admin"); err != nil {
			return err
		}
		logger.Info("promoted user to admin", zap.String("email", email), zap.String("previous_role", existing.Role))
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		if _, err := users.Create(ctx, models.User{Name: "Administrator", Email: email, Role: "admin"}); err != nil {
			return err
		}
		logger.Info("created bootstrap admin", zap.String("email", email))
		return nil
	default:
		return err
	}
}
