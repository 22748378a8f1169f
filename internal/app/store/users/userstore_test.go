package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/pmhub/internal/app/store/users"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/dalemusser/pmhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestStore_Create_Normalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "  Ada   Lovelace ",
		Email: " Ada@Example.COM ",
		Role:  "Manager",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Ada Lovelace" {
		t.Errorf("Name: got %q", created.Name)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q", created.Email)
	}
	if created.Role != "manager" {
		t.Errorf("Role: got %q", created.Role)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail returned %v, want %v", got.ID, created.ID)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		user models.User
	}{
		{"missing name", models.User{Email: "a@b.c", Role: "admin"}},
		{"missing email", models.User{Name: "A", Role: "admin"}},
		{"bad role", models.User{Name: "A", Email: "a@b.c", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.user); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create index: %v", err)
	}

	u := models.User{Name: "Dup", Email: "dup@example.com", Role: "developer"}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("second Create: got %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_UpsertByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.UpsertByEmail(ctx, models.User{
		Name: "Seed User", Email: "seed@example.com", Role: "developer", PasswordHash: "h1",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := store.UpsertByEmail(ctx, models.User{
		Name: "Seed User Renamed", Email: "SEED@example.com", Role: "manager", PasswordHash: "h2",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected same ID, got %v and %v", first.ID, second.ID)
	}
	if second.Name != "Seed User Renamed" || second.Role != "manager" || second.PasswordHash != "h2" {
		t.Errorf("fields not refreshed: %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("created_at changed on update")
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestStore_SetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{Name: "Dev", Email: "dev@example.com", Role: "developer"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetRole(ctx, u.ID, " Admin "); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != "admin" {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if err := store.SetRole(ctx, u.ID, "owner"); err == nil {
		t.Error("expected error for unknown role")
	}
	if err := store.SetRole(ctx, primitive.NewObjectID(), "admin"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing user: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_ResolveRefs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateManager(ctx, "Manny", "manny@example.com")
	b := fixtures.CreateDeveloper(ctx, "Devi", "devi@example.com")
	missing := primitive.NewObjectID()

	refs, err := store.ResolveRefs(ctx, []primitive.ObjectID{a.ID, b.ID, a.ID, missing, primitive.NilObjectID})
	if err != nil {
		t.Fatalf("ResolveRefs failed: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[a.ID].Name != "Manny" || refs[a.ID].Email != "manny@example.com" {
		t.Errorf("ref a: %+v", refs[a.ID])
	}
	if refs[b.ID].Name != "Devi" {
		t.Errorf("ref b: %+v", refs[b.ID])
	}
	if _, ok := refs[missing]; ok {
		t.Error("missing user should not resolve")
	}
}

func TestStore_ResolveRefs_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	refs, err := store.ResolveRefs(ctx, nil)
	if err != nil {
		t.Fatalf("ResolveRefs failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected empty map, got %v", refs)
	}
}
