package projectpolicy

import (
	"testing"

	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessRules(t *testing.T) {
	managerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	p := models.Project{
		ID:       primitive.NewObjectID(),
		Manager:  managerID,
		Team:     []models.TeamMember{{User: memberID, Role: "developer"}},
		IsActive: true,
	}

	tests := []struct {
		name      string
		caller    authz.Caller
		wantRead  bool
		wantWrite bool
	}{
		{"admin not on project", authz.Caller{ID: otherID, Role: authz.RoleAdmin}, true, true},
		{"project manager", authz.Caller{ID: managerID, Role: authz.RoleManager}, true, true},
		{"manager of another project", authz.Caller{ID: otherID, Role: authz.RoleManager}, false, false},
		{"developer on team", authz.Caller{ID: memberID, Role: authz.RoleDeveloper}, true, false},
		{"manager role on team", authz.Caller{ID: memberID, Role: authz.RoleManager}, true, false},
		{"developer not on team", authz.Caller{ID: otherID, Role: authz.RoleDeveloper}, false, false},
		{"developer recorded as manager", authz.Caller{ID: managerID, Role: authz.RoleDeveloper}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRead(tt.caller, p); got != tt.wantRead {
				t.Errorf("CanRead = %v, want %v", got, tt.wantRead)
			}
			if got := CanWrite(tt.caller, p); got != tt.wantWrite {
				t.Errorf("CanWrite = %v, want %v", got, tt.wantWrite)
			}
			if got := CanDelete(tt.caller, p); got != tt.wantWrite {
				t.Errorf("CanDelete = %v, want %v", got, tt.wantWrite)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{authz.RoleAdmin, true},
		{authz.RoleManager, true},
		{authz.RoleDeveloper, false},
		{"", false},
		{"visitor", false},
	}

	for _, tt := range tests {
		c := authz.Caller{ID: primitive.NewObjectID(), Role: tt.role}
		if got := CanCreate(c); got != tt.want {
			t.Errorf("CanCreate(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
