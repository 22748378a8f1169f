// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/pmhub/internal/app/system/auditlog"
	"github.com/dalemusser/pmhub/internal/app/system/breaker"
	"github.com/dalemusser/pmhub/internal/app/system/ratelimit"
	"github.com/dalemusser/pmhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// WAFFLE passes DBDeps by value to every hook after ConnectDB, so state
// that later hooks fill in lives behind the Runtime pointer.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Runtime *Runtime
}

// Runtime is built in Startup/BuildHandler and torn down in Shutdown.
// Any field may be nil.
type Runtime struct {
	Breaker  *breaker.Breaker
	AuditLog *auditlog.Logger
	Repair   *workers.CascadeRepair
	Limiter  *ratelimit.Limiter

	repairRunning bool
}
