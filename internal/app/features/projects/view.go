// internal/app/features/projects/view.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
)

// GetProject returns a live project with its live tasks, newest first.
func (s *Service) GetProject(ctx context.Context, caller authz.Caller, id string) (ProjectDetail, error) {
	oid, err := parseProjectID(id)
	if err != nil {
		return ProjectDetail{}, err
	}
	p, err := s.loadActive(ctx, oid)
	if err != nil {
		return ProjectDetail{}, err
	}
	if !projectpolicy.CanRead(caller, p) {
		return ProjectDetail{}, errAccessDenied
	}

	tasks, err := s.tasks.ListActiveByProject(ctx, oid)
	if err != nil {
		return ProjectDetail{}, storeErr("Failed to fetch project tasks", err)
	}
	return s.resolveDetail(ctx, p, tasks)
}
