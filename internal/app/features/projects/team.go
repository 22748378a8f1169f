// internal/app/features/projects/team.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddTeamMember appends userID to the project team. An empty role becomes
// the default team role.
func (s *Service) AddTeamMember(ctx context.Context, caller authz.Caller, id, userID, role string) (models.ProjectView, error) {
	oid, err := parseProjectID(id)
	if err != nil {
		return models.ProjectView{}, err
	}
	p, err := s.loadActive(ctx, oid)
	if err != nil {
		return models.ProjectView{}, err
	}
	if !projectpolicy.CanWrite(caller, p) {
		return models.ProjectView{}, errAccessDenied
	}

	uid, err := parseUserID(userID)
	if err != nil {
		return models.ProjectView{}, err
	}
	if p.HasMember(uid) {
		return models.ProjectView{}, apierr.Conflict("User is already a team member")
	}
	r, err := cleanTeamRole(role)
	if err != nil {
		return models.ProjectView{}, err
	}

	team := make([]models.TeamMember, 0, len(p.Team)+1)
	team = append(team, p.Team...)
	team = append(team, models.TeamMember{User: uid, Role: r})

	if err := s.projects.SetTeam(ctx, oid, team); err != nil {
		return models.ProjectView{}, writeErr("Failed to add team member", err)
	}
	s.audit.TeamMemberAdded(ctx, caller, oid, uid, r)

	return s.reload(ctx, oid)
}

// RemoveTeamMember drops every team entry for userID. Removing a user who
// is not on the team succeeds and changes nothing.
func (s *Service) RemoveTeamMember(ctx context.Context, caller authz.Caller, id, userID string) (models.ProjectView, error) {
	oid, err := parseProjectID(id)
	if err != nil {
		return models.ProjectView{}, err
	}
	p, err := s.loadActive(ctx, oid)
	if err != nil {
		return models.ProjectView{}, err
	}
	if !projectpolicy.CanWrite(caller, p) {
		return models.ProjectView{}, errAccessDenied
	}

	// An unparsable id can't be on the team.
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return s.resolveProject(ctx, p)
	}

	team := make([]models.TeamMember, 0, len(p.Team))
	for _, m := range p.Team {
		if m.User != uid {
			team = append(team, m)
		}
	}
	removed := len(team) != len(p.Team)

	if removed {
		if err := s.projects.SetTeam(ctx, oid, team); err != nil {
			return models.ProjectView{}, writeErr("Failed to remove team member", err)
		}
	}
	s.audit.TeamMemberRemoved(ctx, caller, oid, uid, removed)

	if !removed {
		return s.resolveProject(ctx, p)
	}
	return s.reload(ctx, oid)
}

func (s *Service) reload(ctx context.Context, oid primitive.ObjectID) (models.ProjectView, error) {
	p, err := s.loadActive(ctx, oid)
	if err != nil {
		return models.ProjectView{}, err
	}
	return s.resolveProject(ctx, p)
}
