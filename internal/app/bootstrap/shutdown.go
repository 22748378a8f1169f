// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background work, flushes the audit file and disconnects
// MongoDB. Steps run in reverse order of construction.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if rt := deps.Runtime; rt != nil {
		if rt.Limiter != nil {
			rt.Limiter.Stop()
		}
		if rt.Repair != nil && rt.repairRunning {
			rt.Repair.Stop()
			rt.repairRunning = false
		}
		if err := rt.AuditLog.Close(); err != nil {
			logger.Warn("audit log close failed", zap.Error(err))
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
