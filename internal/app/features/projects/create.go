// internal/app/features/projects/create.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
)

// CreateProject creates a project managed by caller.
func (s *Service) CreateProject(ctx context.Context, caller authz.Caller, in CreateInput) (models.ProjectView, error) {
	if !projectpolicy.CanCreate(caller) {
		return models.ProjectView{}, errAccessDenied
	}

	p, err := buildProject(caller.ID, in)
	if err != nil {
		return models.ProjectView{}, err
	}

	created, err := s.projects.Create(ctx, p)
	if err != nil {
		return models.ProjectView{}, storeErr("Failed to create project", err)
	}
	s.audit.ProjectCreated(ctx, caller, created.ID, created.Name)

	return s.resolveProject(ctx, created)
}
