// internal/app/features/products/new.go
package products

import (
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
)

// HandleCreate handles POST /products.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		uierrors.RenderValidation(w, "Invalid request body")
		return
	}
	patch, err := buildPatch(in, true)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}

	p, err := h.Store.Create(r.Context(), newProduct(patch))
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to create product", err))
		return
	}
	respond.JSON(w, http.StatusCreated, productResponse{
		Success: true,
		Message: "Product created successfully",
		Product: &p,
	})
}
