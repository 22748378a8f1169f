// internal/app/features/products/edit.go
package products

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleEdit handles PUT /products/{id}. Only fields present in the body
// change.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.productID(w, r)
	if !ok {
		return
	}
	var in productInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		uierrors.RenderValidation(w, "Invalid request body")
		return
	}
	patch, err := buildPatch(in, false)
	if err != nil {
		uierrors.Write(w, r, h.Log, err)
		return
	}

	p, err := h.Store.Update(r.Context(), oid, patch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.Write(w, r, h.Log, errProductNotFound)
		return
	}
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to update product", err))
		return
	}
	respond.JSON(w, http.StatusOK, productResponse{
		Success: true,
		Message: "Product updated successfully",
		Product: &p,
	})
}
