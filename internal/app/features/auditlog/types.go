// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/pmhub/internal/domain/models"
)

// listItem is one audit event with actor and target resolved.
type listItem struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	Actor         *models.UserRef   `json:"actor,omitempty"`
	ActorRole     string            `json:"actorRole,omitempty"`
	ProjectID     string            `json:"projectId,omitempty"`
	Target        *models.UserRef   `json:"target,omitempty"`
	IP            string            `json:"ip,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Events      []listItem `json:"events"`
	Total       int64      `json:"total"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

type repairResponse struct {
	Message  string `json:"message"`
	Projects int    `json:"projects"`
	Tasks    int64  `json:"tasks"`
}
