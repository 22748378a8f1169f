package projects

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memProjects is an in-memory ProjectStore.
type memProjects struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]models.Project
	clock   time.Time
	failErr error
	writes  int
}

func newMemProjects() *memProjects {
	return &memProjects{
		byID:  make(map[primitive.ObjectID]models.Project),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memProjects) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func cloneProject(p models.Project) models.Project {
	p.Team = append([]models.TeamMember{}, p.Team...)
	return p
}

func (m *memProjects) GetActive(_ context.Context, id primitive.ObjectID) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return models.Project{}, m.failErr
	}
	p, ok := m.byID[id]
	if !ok || !p.IsActive {
		return models.Project{}, mongo.ErrNoDocuments
	}
	return cloneProject(p), nil
}

func (m *memProjects) raw(id primitive.ObjectID) models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneProject(m.byID[id])
}

func matchesSpec(p models.Project, spec projectquery.FilterSpec) bool {
	if !p.IsActive {
		return false
	}
	if spec.Status != "" && p.Status != spec.Status {
		return false
	}
	if spec.Priority != "" && p.Priority != spec.Priority {
		return false
	}
	if spec.SearchApplies() {
		q := strings.ToLower(spec.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if spec.ScopeUser != nil {
		u := *spec.ScopeUser
		if p.Manager != u && !p.HasMember(u) {
			return false
		}
	}
	return true
}

func (m *memProjects) List(_ context.Context, spec projectquery.FilterSpec) ([]models.Project, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, 0, m.failErr
	}

	var all []models.Project
	for _, p := range m.byID {
		if matchesSpec(p, spec) {
			all = append(all, cloneProject(p))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := int(spec.Page.Offset())
	if start > len(all) {
		start = len(all)
	}
	end := start + spec.Page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memProjects) Create(_ context.Context, p models.Project) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return models.Project{}, m.failErr
	}
	now := m.tick()
	p.ID = primitive.NewObjectID()
	if p.Team == nil {
		p.Team = []models.TeamMember{}
	}
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	m.byID[p.ID] = cloneProject(p)
	m.writes++
	return cloneProject(p), nil
}

func (m *memProjects) mutate(id primitive.ObjectID, fn func(*models.Project)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	p, ok := m.byID[id]
	if !ok || !p.IsActive {
		return mongo.ErrNoDocuments
	}
	fn(&p)
	p.UpdatedAt = m.tick()
	m.byID[id] = p
	m.writes++
	return nil
}

func (m *memProjects) Update(_ context.Context, id primitive.ObjectID, patch projectstore.Patch) error {
	return m.mutate(id, func(p *models.Project) { *p = patch.Apply(*p) })
}

func (m *memProjects) SetTeam(_ context.Context, id primitive.ObjectID, team []models.TeamMember) error {
	return m.mutate(id, func(p *models.Project) { p.Team = append([]models.TeamMember{}, team...) })
}

func (m *memProjects) Deactivate(_ context.Context, id primitive.ObjectID) error {
	return m.mutate(id, func(p *models.Project) { p.IsActive = false })
}

// memTasks is an in-memory TaskStore.
type memTasks struct {
	mu         sync.Mutex
	tasks      []models.Task
	cascadeErr error
}

func (m *memTasks) add(t models.Task) models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = primitive.NewObjectID()
	t.IsActive = true
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Date(2024, 2, 1, 0, 0, len(m.tasks), 0, time.UTC)
	}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *memTasks) ListActiveByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Task
	for _, t := range m.tasks {
		if t.Project == projectID && t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTasks) DeactivateByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cascadeErr != nil {
		return 0, m.cascadeErr
	}
	var n int64
	for i := range m.tasks {
		if m.tasks[i].Project == projectID {
			m.tasks[i].IsActive = false
			n++
		}
	}
	return n, nil
}

func (m *memTasks) all(projectID primitive.ObjectID) []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Task
	for _, t := range m.tasks {
		if t.Project == projectID {
			out = append(out, t)
		}
	}
	return out
}

// memUsers resolves ids from a fixed directory.
type memUsers struct {
	refs map[primitive.ObjectID]models.UserRef
}

func (m *memUsers) add(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	m.refs[id] = models.UserRef{ID: id, Name: name, Email: strings.ToLower(name) + "@example.com"}
	return id
}

func (m *memUsers) ResolveRefs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	out := make(map[primitive.ObjectID]models.UserRef, len(ids))
	for _, id := range ids {
		if r, ok := m.refs[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

// recordingAuditor keeps the event types it was handed.
type recordingAuditor struct {
	mu         sync.Mutex
	events     []string
	cascadeErr error
	failErr    error
}

func (a *recordingAuditor) record(e string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAuditor) ProjectCreated(context.Context, authz.Caller, primitive.ObjectID, string) {
	a.record("project_created")
}
func (a *recordingAuditor) ProjectUpdated(context.Context, authz.Caller, primitive.ObjectID, []string) {
	a.record("project_updated")
}
func (a *recordingAuditor) ProjectDeleted(_ context.Context, _ authz.Caller, _ primitive.ObjectID, _ int64, err error) {
	a.cascadeErr = err
	a.record("project_deleted")
}
func (a *recordingAuditor) ProjectDeleteFailed(_ context.Context, _ authz.Caller, _ primitive.ObjectID, err error) {
	a.failErr = err
	a.record("project_delete_failed")
}
func (a *recordingAuditor) TeamMemberAdded(context.Context, authz.Caller, primitive.ObjectID, primitive.ObjectID, string) {
	a.record("team_member_added")
}
func (a *recordingAuditor) TeamMemberRemoved(context.Context, authz.Caller, primitive.ObjectID, primitive.ObjectID, bool) {
	a.record("team_member_removed")
}

// env bundles a Service with its fakes.
type env struct {
	svc      *Service
	projects *memProjects
	tasks    *memTasks
	users    *memUsers
	audit    *recordingAuditor
}

func newEnv(opts projectquery.Options) *env {
	e := &env{
		projects: newMemProjects(),
		tasks:    &memTasks{},
		users:    &memUsers{refs: make(map[primitive.ObjectID]models.UserRef)},
		audit:    &recordingAuditor{},
	}
	e.svc = NewService(Deps{
		Projects: e.projects,
		Tasks:    e.tasks,
		Users:    e.users,
		Audit:    e.audit,
		Query:    opts,
	})
	return e
}

func (e *env) caller(name, role string) authz.Caller {
	return authz.Caller{ID: e.users.add(name), Role: role}
}

// seed stores an active project directly, bypassing service checks.
func (e *env) seed(name, status, priority string, manager primitive.ObjectID, team ...primitive.ObjectID) models.Project {
	members := make([]models.TeamMember, 0, len(team))
	for _, u := range team {
		members = append(members, models.TeamMember{User: u, Role: models.DefaultTeamRole})
	}
	p, _ := e.projects.Create(context.Background(), models.Project{
		Name:     name,
		Status:   status,
		Priority: priority,
		Manager:  manager,
		Team:     members,
	})
	return p
}
