// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin routes under the path where this router is
// mounted (typically "/api/admin" from bootstrap). Admins only.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Use(am.RequireRole("admin"))

		pr.Get("/audit", h.ServeList)
		pr.Post("/repair-cascade", h.HandleRepairCascade)
	})

	return r
}
