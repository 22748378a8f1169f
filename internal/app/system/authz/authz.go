// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caller is the authenticated actor the core services authorize against.
// The core trusts it as given.
type Caller struct {
	ID   primitive.ObjectID
	Role string
}

// IsAdmin reports whether the caller has the admin role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false. ok=true means a valid, authenticated
// user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// CallerFrom builds a Caller from the request identity.
func CallerFrom(r *http.Request) (Caller, bool) {
	role, _, id, ok := UserCtx(r)
	if !ok {
		return Caller{}, false
	}
	return Caller{ID: id, Role: role}, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleAdmin
}

// IsManager reports whether the current request's user is a manager.
func IsManager(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleManager
}

// IsDeveloper reports whether the current request's user is a developer.
func IsDeveloper(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleDeveloper
}
