// internal/app/features/products/routes.go
package products

import "github.com/go-chi/chi/v5"

// Routes mounts the catalog under the base path (typically "/api/products").
// The catalog is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/categories/list", h.ServeCategories)
	r.Get("/{id}", h.ServeView)

	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
