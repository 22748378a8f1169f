// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/store/audit"
	"github.com/dalemusser/pmhub/internal/app/system/workers"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventStore reads audit events.
type EventStore interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

// UserResolver maps user ids to display identities.
type UserResolver interface {
	ResolveRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error)
}

// Repairer runs one cascade reconciliation pass.
type Repairer interface {
	RunOnce(ctx context.Context) (workers.RepairResult, error)
}

// Handler serves the admin audit and maintenance endpoints.
type Handler struct {
	Events EventStore
	Users  UserResolver
	Repair Repairer
	Log    *zap.Logger
}

// NewHandler constructs an admin Handler.
func NewHandler(events EventStore, users UserResolver, repair Repairer, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Users:  users,
		Repair: repair,
		Log:    logger,
	}
}
