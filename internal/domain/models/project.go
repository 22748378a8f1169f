// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	ProjectPlanned   = "planned"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Priorities shared by projects and tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultTeamRole is assigned to team members added without an explicit role.
const DefaultTeamRole = "developer"

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{ProjectPlanned, ProjectActive, ProjectCompleted, ProjectCancelled}

// Priorities lists every valid priority.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Project is a unit of work owned by a manager and staffed by a team.
//
// NOTE:
//   - Manager access never depends on Team; a manager need not be listed there.
//   - Team holds at most one entry per user.
//   - IsActive=false is a soft delete. Inactive projects are invisible to
//     every read and mutation path.
type Project struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	Manager     primitive.ObjectID `bson:"manager" json:"manager"`
	Team        []TeamMember       `bson:"team" json:"team"`

	StartDate *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`

	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TeamMember is one entry of Project.Team.
type TeamMember struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role string             `bson:"role" json:"role"`
}

// HasMember reports whether userID appears in the project's team.
func (p Project) HasMember(userID primitive.ObjectID) bool {
	for _, m := range p.Team {
		if m.User == userID {
			return true
		}
	}
	return false
}

// ProjectView is a Project with manager and team identities resolved.
type ProjectView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	Manager     UserRef            `json:"manager"`
	Team        []TeamMemberView   `json:"team"`
	StartDate   *time.Time         `json:"startDate,omitempty"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// TeamMemberView is a TeamMember with the user resolved.
type TeamMemberView struct {
	User UserRef `json:"user"`
	Role string  `json:"role"`
}
