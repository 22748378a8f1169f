package projectstore_test

import (
	"errors"
	"testing"
	"time"

	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/dalemusser/pmhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func strPtr(s string) *string { return &s }

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mgr := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Project{
		Name:     "Apollo",
		Status:   models.ProjectPlanned,
		Priority: models.PriorityHigh,
		Manager:  mgr,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if !created.IsActive {
		t.Error("expected project to be active")
	}
	if created.Team == nil {
		t.Error("expected empty team, got nil")
	}

	got, err := store.GetActive(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if got.Manager != mgr || got.Name != "Apollo" {
		t.Errorf("unexpected project: %+v", got)
	}
}

func TestStore_GetActive_Inactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Old", primitive.NewObjectID())
	if err := store.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if _, err := store.GetActive(ctx, p.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetActive: got %v, want ErrNoDocuments", err)
	}
	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected project to be inactive")
	}

	// Mutations on an inactive project do not match.
	if err := store.Update(ctx, p.ID, projectstore.Patch{Name: strPtr("x")}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Update: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_Update_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := models.TeamMember{User: primitive.NewObjectID(), Role: "qa"}
	p := fixtures.CreateProject(ctx, "Gemini", primitive.NewObjectID(), member)

	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	err := store.Update(ctx, p.ID, projectstore.Patch{
		Status:    strPtr(models.ProjectCompleted),
		StartDate: &start,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetActive(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if got.Status != models.ProjectCompleted {
		t.Errorf("Status: got %q", got.Status)
	}
	if got.Name != "Gemini" || got.Priority != p.Priority {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.StartDate == nil || !got.StartDate.Equal(start) {
		t.Errorf("StartDate: got %v", got.StartDate)
	}
	if len(got.Team) != 1 || got.Team[0] != member {
		t.Errorf("team changed: %+v", got.Team)
	}
}

func TestStore_SetTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Team", primitive.NewObjectID())
	team := []models.TeamMember{
		{User: primitive.NewObjectID(), Role: "developer"},
		{User: primitive.NewObjectID(), Role: "qa"},
	}
	if err := store.SetTeam(ctx, p.ID, team); err != nil {
		t.Fatalf("SetTeam failed: %v", err)
	}

	got, _ := store.GetActive(ctx, p.ID)
	if len(got.Team) != 2 || got.Team[0] != team[0] || got.Team[1] != team[1] {
		t.Errorf("Team: got %+v", got.Team)
	}

	if err := store.SetTeam(ctx, p.ID, nil); err != nil {
		t.Fatalf("SetTeam(nil) failed: %v", err)
	}
	got, _ = store.GetActive(ctx, p.ID)
	if got.Team == nil || len(got.Team) != 0 {
		t.Errorf("expected empty team, got %+v", got.Team)
	}
}

func TestStore_List_Scoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dev := primitive.NewObjectID()
	other := primitive.NewObjectID()

	mine := fixtures.CreateProject(ctx, "Mine", dev)
	joined := fixtures.CreateProject(ctx, "Joined", other, models.TeamMember{User: dev, Role: "developer"})
	fixtures.CreateProject(ctx, "Foreign", other)
	gone := fixtures.CreateProject(ctx, "Gone", dev)
	if err := store.Deactivate(ctx, gone.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	opts := projectquery.Options{DefaultLimit: 10, MaxLimit: 100}

	spec := projectquery.Build(authz.Caller{ID: dev, Role: authz.RoleDeveloper}, projectquery.Params{}, opts)
	items, total, err := store.List(ctx, spec)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("developer: total=%d items=%d, want 2", total, len(items))
	}
	ids := map[primitive.ObjectID]bool{items[0].ID: true, items[1].ID: true}
	if !ids[mine.ID] || !ids[joined.ID] {
		t.Errorf("developer saw wrong projects: %v", ids)
	}

	spec = projectquery.Build(authz.Caller{ID: other, Role: authz.RoleAdmin}, projectquery.Params{}, opts)
	_, total, err = store.List(ctx, spec)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("admin: total=%d, want 3", total)
	}
}

func TestStore_List_SearchAndPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mgr := primitive.NewObjectID()
	for _, name := range []string{"Alpha Rocket", "Beta rocket", "Gamma", "Delta (Rocket)"} {
		fixtures.CreateProject(ctx, name, mgr)
		time.Sleep(2 * time.Millisecond)
	}

	admin := authz.Caller{ID: mgr, Role: authz.RoleAdmin}
	opts := projectquery.Options{DefaultLimit: 10, MaxLimit: 100}

	spec := projectquery.Build(admin, projectquery.Params{Search: "ROCKET", Limit: 2}, opts)
	items, total, err := store.List(ctx, spec)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total=%d, want 3", total)
	}
	if len(items) != 2 {
		t.Fatalf("items=%d, want 2", len(items))
	}
	if items[0].Name != "Delta (Rocket)" {
		t.Errorf("expected newest first, got %q", items[0].Name)
	}

	// Regex metacharacters in the search are matched literally.
	spec = projectquery.Build(admin, projectquery.Params{Search: "(Rocket)"}, opts)
	_, total, err = store.List(ctx, spec)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 {
		t.Errorf("literal search total=%d, want 1", total)
	}
}

func TestStore_ActiveIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	live := fixtures.CreateProject(ctx, "Live", primitive.NewObjectID())
	dead := fixtures.CreateProject(ctx, "Dead", primitive.NewObjectID())
	_ = store.Deactivate(ctx, dead.ID)

	got, err := store.ActiveIDs(ctx, []primitive.ObjectID{live.ID, dead.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("ActiveIDs failed: %v", err)
	}
	if len(got) != 1 || !got[live.ID] {
		t.Errorf("ActiveIDs = %v, want only %v", got, live.ID)
	}
}

func TestPatch_Apply(t *testing.T) {
	p := models.Project{Name: "a", Description: "d", Status: "planned", Priority: "low"}
	if !(projectstore.Patch{}).Empty() {
		t.Error("zero patch should be empty")
	}

	got := projectstore.Patch{Priority: strPtr("high")}.Apply(p)
	if got.Priority != "high" || got.Name != "a" || got.Status != "planned" {
		t.Errorf("Apply: %+v", got)
	}
}
