package indexes

import (
	"testing"

	"github.com/dalemusser/pmhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func TestPlan(t *testing.T) {
	yes := true
	existing := map[string]existingIndex{
		"email:1":            {Name: "email_1", Key: bson.D{{Key: "email", Value: 1}}},
		"role:1":             {Name: "idx_users_role", Key: bson.D{{Key: "role", Value: 1}}},
		"manager:1, x:-1":    {Name: "old", Key: bson.D{{Key: "manager", Value: 1}, {Key: "x", Value: -1}}, Unique: &yes},
	}

	tests := []struct {
		name  string
		model mongo.IndexModel
		want  action
	}{
		{"new keys", mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("s")}, actCreate},
		{"same keys and name", mongo.IndexModel{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("idx_users_role")}, actReuse},
		{"upgrade to unique", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_1")}, actReplace},
		{"rename", mongo.IndexModel{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("role_new")}, actReplace},
		{"drop unique", mongo.IndexModel{Keys: bson.D{{Key: "manager", Value: 1}, {Key: "x", Value: -1}}, Options: options.Index().SetName("old")}, actReplace},
		{"unnamed reuse", mongo.IndexModel{Keys: bson.D{{Key: "role", Value: 1}}}, actReuse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := plan(tt.model, existing); got != tt.want {
				t.Errorf("plan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureAll: %v", err)
	}
	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}

	cur, err := db.Collection("projects").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	defer cur.Close(ctx)

	names := map[string]bool{}
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err == nil {
			if n, ok := idx["name"].(string); ok {
				names[n] = true
			}
		}
	}
	for _, want := range []string{"idx_projects_active_created", "idx_projects_manager_active", "idx_projects_teamuser_active"} {
		if !names[want] {
			t.Errorf("missing index %s", want)
		}
	}
}
