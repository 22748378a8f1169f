// internal/app/features/projects/resolve.go
package projects

import (
	"context"

	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// refFor returns the resolved identity for id. Users that no longer exist
// keep their id with empty name and email.
func refFor(refs map[primitive.ObjectID]models.UserRef, id primitive.ObjectID) models.UserRef {
	if r, ok := refs[id]; ok {
		return r
	}
	return models.UserRef{ID: id}
}

func projectView(p models.Project, refs map[primitive.ObjectID]models.UserRef) models.ProjectView {
	team := make([]models.TeamMemberView, 0, len(p.Team))
	for _, m := range p.Team {
		team = append(team, models.TeamMemberView{User: refFor(refs, m.User), Role: m.Role})
	}
	return models.ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		Manager:     refFor(refs, p.Manager),
		Team:        team,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func taskView(t models.Task, refs map[primitive.ObjectID]models.UserRef) models.TaskView {
	v := models.TaskView{
		ID:          t.ID,
		Project:     t.Project,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedBy:   refFor(refs, t.CreatedBy),
		DueDate:     t.DueDate,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		ref := refFor(refs, *t.AssignedTo)
		v.AssignedTo = &ref
	}
	return v
}

// resolveProjects builds views for ps with one user lookup.
func (s *Service) resolveProjects(ctx context.Context, ps []models.Project) ([]models.ProjectView, error) {
	var ids []primitive.ObjectID
	for _, p := range ps {
		ids = append(ids, p.Manager)
		for _, m := range p.Team {
			ids = append(ids, m.User)
		}
	}
	refs, err := s.users.ResolveRefs(ctx, ids)
	if err != nil {
		return nil, storeErr("Failed to resolve users", err)
	}

	views := make([]models.ProjectView, 0, len(ps))
	for _, p := range ps {
		views = append(views, projectView(p, refs))
	}
	return views, nil
}

func (s *Service) resolveProject(ctx context.Context, p models.Project) (models.ProjectView, error) {
	views, err := s.resolveProjects(ctx, []models.Project{p})
	if err != nil {
		return models.ProjectView{}, err
	}
	return views[0], nil
}

// resolveDetail resolves a project and its tasks with one user lookup.
func (s *Service) resolveDetail(ctx context.Context, p models.Project, tasks []models.Task) (ProjectDetail, error) {
	ids := []primitive.ObjectID{p.Manager}
	for _, m := range p.Team {
		ids = append(ids, m.User)
	}
	for _, t := range tasks {
		ids = append(ids, t.CreatedBy)
		if t.AssignedTo != nil {
			ids = append(ids, *t.AssignedTo)
		}
	}
	refs, err := s.users.ResolveRefs(ctx, ids)
	if err != nil {
		return ProjectDetail{}, storeErr("Failed to resolve users", err)
	}

	out := ProjectDetail{
		Project: projectView(p, refs),
		Tasks:   make([]models.TaskView, 0, len(tasks)),
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskView(t, refs))
	}
	return out, nil
}
