// internal/app/features/products/delete.go
package products

import (
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
)

// HandleDelete handles DELETE /products/{id}. Products are removed outright.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.productID(w, r)
	if !ok {
		return
	}
	n, err := h.Store.Delete(r.Context(), oid)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to delete product", err))
		return
	}
	if n == 0 {
		uierrors.Write(w, r, h.Log, errProductNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, productResponse{Success: true, Message: "Product deleted successfully"})
}
