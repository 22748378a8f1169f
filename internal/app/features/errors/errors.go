// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
)

// Handler serves the router-level error responses.
// No DB needed; it just writes JSON bodies.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers requests for unknown API routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, string(apierr.KindNotFound), "Route not found", "")
}

// MethodNotAllowed answers requests with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", "")
}
