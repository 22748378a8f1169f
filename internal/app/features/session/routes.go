// internal/app/features/session/routes.go
package session

import (
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.With(am.RequireSignedIn).Post("/", h.HandleStart)
	r.Delete("/", h.HandleEnd)

	return r
}
