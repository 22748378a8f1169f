// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all project routes under the base path
// (typically "/api/projects" from bootstrap).
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Any signed-in caller; per-project checks happen in the service.
	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		// TEAM
		pr.Post("/{id}/team", h.HandleAddTeamMember)
		pr.Delete("/{id}/team/{userId}", h.HandleRemoveTeamMember)
	})

	// Creation is gated by role since there is no project to check yet.
	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Use(am.RequireRole("admin", "manager"))

		pr.Post("/", h.HandleCreate)
	})

	return r
}
