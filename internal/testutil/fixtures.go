package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	return f.CreateUser(ctx, name, email, "admin")
}

// CreateManager creates a test manager user.
func (f *Fixtures) CreateManager(ctx context.Context, name, email string) models.User {
	return f.CreateUser(ctx, name, email, "manager")
}

// CreateDeveloper creates a test developer user.
func (f *Fixtures) CreateDeveloper(ctx context.Context, name, email string) models.User {
	return f.CreateUser(ctx, name, email, "developer")
}

// CreateProject creates an active project managed by managerID.
func (f *Fixtures) CreateProject(ctx context.Context, name string, managerID primitive.ObjectID, team ...models.TeamMember) models.Project {
	f.t.Helper()

	if team == nil {
		team = []models.TeamMember{}
	}
	now := time.Now().UTC()
	p := models.Project{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Status:    models.ProjectPlanned,
		Priority:  models.PriorityMedium,
		Manager:   managerID,
		Team:      team,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateTask creates an active task in projectID.
func (f *Fixtures) CreateTask(ctx context.Context, title string, projectID, createdBy primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		Project:   projectID,
		Title:     title,
		Status:    models.TaskTodo,
		Priority:  models.PriorityMedium,
		CreatedBy: createdBy,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateProduct creates a catalog product.
func (f *Fixtures) CreateProduct(ctx context.Context, name, category string, price float64) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Product{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Price:         price,
		Description:   name + " description",
		Category:      category,
		StockQuantity: 5,
		InStock:       true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}
