// internal/app/features/projects/list.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"go.uber.org/zap"
)

// ListProjects returns one page of the live projects visible to caller.
func (s *Service) ListProjects(ctx context.Context, caller authz.Caller, p projectquery.Params) (ProjectPage, error) {
	spec := projectquery.Build(caller, p, s.query)
	if spec.Search != "" && !spec.SearchApplies() {
		s.log.Debug("search dropped by role scope",
			zap.String("user_id", caller.ID.Hex()),
			zap.String("scope_policy", string(spec.Policy)))
	}

	items, total, err := s.projects.List(ctx, spec)
	if err != nil {
		return ProjectPage{}, storeErr("Failed to fetch projects", err)
	}

	views, err := s.resolveProjects(ctx, items)
	if err != nil {
		return ProjectPage{}, err
	}

	return ProjectPage{
		Projects:    views,
		Total:       total,
		TotalPages:  projectquery.TotalPages(total, spec.Page.Limit),
		CurrentPage: spec.Page.Number,
	}, nil
}
