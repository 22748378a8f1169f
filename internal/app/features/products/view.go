// internal/app/features/products/view.go
package products

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errProductNotFound = apierr.NotFound("Product not found")

// productID parses the {id} URL parameter, writing a 400 when malformed.
func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderValidation(w, "Invalid product id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ServeView handles GET /products/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.productID(w, r)
	if !ok {
		return
	}
	p, err := h.Store.GetByID(r.Context(), oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.Write(w, r, h.Log, errProductNotFound)
		return
	}
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to fetch product", err))
		return
	}
	respond.JSON(w, http.StatusOK, productResponse{Success: true, Product: &p})
}
