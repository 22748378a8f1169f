// internal/app/features/projects/update.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
)

// UpdateProject applies the fields present in in. Manager, team, active
// flag, and creation time cannot be changed here.
func (s *Service) UpdateProject(ctx context.Context, caller authz.Caller, id string, in UpdateInput) (models.ProjectView, error) {
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

	patch, fields, err := buildPatch(in)
	if err != nil {
		return models.ProjectView{}, err
	}
	if patch.Empty() {
		return s.resolveProject(ctx, p)
	}

	// Dates are checked against the merged result so a lone endDate can't
	// land before an existing startDate.
	next := patch.Apply(p)
	if err := checkDates(next.StartDate, next.EndDate); err != nil {
		return models.ProjectView{}, err
	}

	if err := s.projects.Update(ctx, oid, patch); err != nil {
		return models.ProjectView{}, writeErr("Failed to update project", err)
	}
	s.audit.ProjectUpdated(ctx, caller, oid, fields)

	updated, err := s.loadActive(ctx, oid)
	if err != nil {
		return models.ProjectView{}, err
	}
	return s.resolveProject(ctx, updated)
}
