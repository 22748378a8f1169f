// internal/app/features/projects/service.go
package projects

import (
	"context"
	"errors"
	"time"

	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/app/system/breaker"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProjectStore is the project persistence the service needs.
// Reads and writes that target a single project only ever match live
// projects and report a miss as mongo.ErrNoDocuments.
type ProjectStore interface {
	GetActive(ctx context.Context, id primitive.ObjectID) (models.Project, error)
	List(ctx context.Context, spec projectquery.FilterSpec) ([]models.Project, int64, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, patch projectstore.Patch) error
	SetTeam(ctx context.Context, id primitive.ObjectID, team []models.TeamMember) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

// TaskStore is the task persistence the service needs.
type TaskStore interface {
	ListActiveByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	DeactivateByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
}

// UserResolver maps user ids to display identities.
type UserResolver interface {
	ResolveRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error)
}

// TxRunner runs fn atomically when the deployment supports it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Auditor records project mutations.
type Auditor interface {
	ProjectCreated(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, name string)
	ProjectUpdated(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, fields []string)
	ProjectDeleted(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, tasks int64, cascadeErr error)
	ProjectDeleteFailed(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, err error)
	TeamMemberAdded(ctx context.Context, actor authz.Caller, projectID, userID primitive.ObjectID, role string)
	TeamMemberRemoved(ctx context.Context, actor authz.Caller, projectID, userID primitive.ObjectID, removed bool)
}

// Deps wires a Service. Tx and Audit are optional.
type Deps struct {
	Projects ProjectStore
	Tasks    TaskStore
	Users    UserResolver
	Tx       TxRunner
	Audit    Auditor
	Log      *zap.Logger
	Query    projectquery.Options
}

// Service implements project listing, lifecycle, and team membership.
// Every method gates on the caller before touching anything it would
// return or change.
type Service struct {
	projects ProjectStore
	tasks    TaskStore
	users    UserResolver
	tx       TxRunner
	audit    Auditor
	log      *zap.Logger
	query    projectquery.Options
	now      func() time.Time
}

// NewService constructs a Service from d.
func NewService(d Deps) *Service {
	s := &Service{
		projects: d.Projects,
		tasks:    d.Tasks,
		users:    d.Users,
		tx:       d.Tx,
		audit:    d.Audit,
		log:      d.Log,
		query:    d.Query,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if s.tx == nil {
		s.tx = directRunner{}
	}
	if s.audit == nil {
		s.audit = nopAuditor{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// loadActive fetches a live project, mapping a miss to NotFound.
func (s *Service) loadActive(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	p, err := s.projects.GetActive(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Project{}, errProjectNotFound
	}
	if err != nil {
		return models.Project{}, storeErr("Failed to fetch project", err)
	}
	return p, nil
}

var (
	errProjectNotFound = apierr.NotFound("Project not found")
	errAccessDenied    = apierr.Forbidden("Access denied")
)

// storeErr wraps a store failure as DataAccess.
func storeErr(msg string, err error) error {
	if errors.Is(err, breaker.ErrOpen) {
		return apierr.DataAccess("Data store unavailable", err)
	}
	return apierr.DataAccess(msg, err)
}

// writeErr is storeErr for writes that target a live project; a miss
// means the project was deleted after it was loaded.
func writeErr(msg string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errProjectNotFound
	}
	return storeErr(msg, err)
}

func parseProjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("Invalid project id")
	}
	return oid, nil
}

type directRunner struct{}

func (directRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopAuditor struct{}

func (nopAuditor) ProjectCreated(context.Context, authz.Caller, primitive.ObjectID, string)   {}
func (nopAuditor) ProjectUpdated(context.Context, authz.Caller, primitive.ObjectID, []string) {}
func (nopAuditor) ProjectDeleted(context.Context, authz.Caller, primitive.ObjectID, int64, error) {
}
func (nopAuditor) ProjectDeleteFailed(context.Context, authz.Caller, primitive.ObjectID, error) {}
func (nopAuditor) TeamMemberAdded(context.Context, authz.Caller, primitive.ObjectID, primitive.ObjectID, string) {
}
func (nopAuditor) TeamMemberRemoved(context.Context, authz.Caller, primitive.ObjectID, primitive.ObjectID, bool) {
}
