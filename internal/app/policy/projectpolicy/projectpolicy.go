// internal/app/policy/projectpolicy/projectpolicy.go
package projectpolicy

import (
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/domain/models"
)

// These checks assume the project has already been fetched as active.
// Callers report a missing project as not-found before consulting them,
// so a denial here always means the project exists.

// CanRead reports whether the caller may view the project:
// - Admins always can
// - The project's manager can
// - Any user listed in the team can
func CanRead(c authz.Caller, p models.Project) bool {
	if c.IsAdmin() {
		return true
	}
	if c.ID == p.Manager {
		return true
	}
	return p.HasMember(c.ID)
}

// CanWrite reports whether the caller may modify the project or its team.
// Team membership alone never grants write.
func CanWrite(c authz.Caller, p models.Project) bool {
	return c.IsAdmin() || c.ID == p.Manager
}

// CanDelete follows the write rule.
func CanDelete(c authz.Caller, p models.Project) bool {
	return CanWrite(c, p)
}

// CanCreate reports whether the caller's role may create projects at all.
func CanCreate(c authz.Caller) bool {
	return c.Role == authz.RoleAdmin || c.Role == authz.RoleManager
}
