// internal/app/features/projects/guarded.go
package projects

import (
	"context"

	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	taskstore "github.com/dalemusser/pmhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/pmhub/internal/app/store/users"
	"github.com/dalemusser/pmhub/internal/app/system/breaker"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuardedProjects routes project store calls through a circuit breaker.
type GuardedProjects struct {
	s *projectstore.Store
	b *breaker.Breaker
}

// NewGuardedProjects wraps s with b. A nil breaker passes calls through.
func NewGuardedProjects(s *projectstore.Store, b *breaker.Breaker) *GuardedProjects {
	return &GuardedProjects{s: s, b: b}
}

func (g *GuardedProjects) GetActive(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	return breaker.Call(g.b, func() (models.Project, error) { return g.s.GetActive(ctx, id) })
}

func (g *GuardedProjects) List(ctx context.Context, spec projectquery.FilterSpec) ([]models.Project, int64, error) {
	type page struct {
		items []models.Project
		total int64
	}
	out, err := breaker.Call(g.b, func() (page, error) {
		items, total, err := g.s.List(ctx, spec)
		return page{items, total}, err
	})
	return out.items, out.total, err
}

func (g *GuardedProjects) Create(ctx context.Context, p models.Project) (models.Project, error) {
	return breaker.Call(g.b, func() (models.Project, error) { return g.s.Create(ctx, p) })
}

func (g *GuardedProjects) Update(ctx context.Context, id primitive.ObjectID, patch projectstore.Patch) error {
	return g.b.Do(func() error { return g.s.Update(ctx, id, patch) })
}

func (g *GuardedProjects) SetTeam(ctx context.Context, id primitive.ObjectID, team []models.TeamMember) error {
	return g.b.Do(func() error { return g.s.SetTeam(ctx, id, team) })
}

func (g *GuardedProjects) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return g.b.Do(func() error { return g.s.Deactivate(ctx, id) })
}

// GuardedTasks routes task store calls through a circuit breaker.
type GuardedTasks struct {
	s *taskstore.Store
	b *breaker.Breaker
}

// NewGuardedTasks wraps s with b.
func NewGuardedTasks(s *taskstore.Store, b *breaker.Breaker) *GuardedTasks {
	return &GuardedTasks{s: s, b: b}
}

func (g *GuardedTasks) ListActiveByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return breaker.Call(g.b, func() ([]models.Task, error) { return g.s.ListActiveByProject(ctx, projectID) })
}

func (g *GuardedTasks) DeactivateByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return breaker.Call(g.b, func() (int64, error) { return g.s.DeactivateByProject(ctx, projectID) })
}

// GuardedUsers routes user lookups through a circuit breaker.
type GuardedUsers struct {
	s *userstore.Store
	b *breaker.Breaker
}

// NewGuardedUsers wraps s with b.
func NewGuardedUsers(s *userstore.Store, b *breaker.Breaker) *GuardedUsers {
	return &GuardedUsers{s: s, b: b}
}

func (g *GuardedUsers) ResolveRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	return breaker.Call(g.b, func() (map[primitive.ObjectID]models.UserRef, error) { return g.s.ResolveRefs(ctx, ids) })
}
