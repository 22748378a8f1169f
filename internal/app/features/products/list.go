// internal/app/features/products/list.go
package products

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/pmhub/internal/app/features/errors"
	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	"github.com/dalemusser/pmhub/internal/app/system/apierr"
	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /products.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := productstore.ListQuery{
		Search:   normalize.QueryParam(query.Get(r, "search")),
		Category: normalize.QueryParam(query.Get(r, "category")),
		SortBy:   normalize.QueryParam(query.Get(r, "sortBy")),
		Asc:      strings.EqualFold(query.Get(r, "sortOrder"), "asc"),
		Page:     paging.FromRequest(r, h.DefaultLimit, h.MaxLimit),
	}

	items, total, err := h.Store.List(r.Context(), q)
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to fetch products", err))
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Success:     true,
		Products:    items,
		Total:       total,
		TotalPages:  paging.TotalPages(total, q.Page.Limit),
		CurrentPage: q.Page.Number,
	})
}

// ServeCategories handles GET /products/categories/list.
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Store.Categories(r.Context())
	if err != nil {
		uierrors.Write(w, r, h.Log, apierr.DataAccess("Failed to fetch categories", err))
		return
	}
	respond.JSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: cats})
}
