// internal/app/features/products/types.go
package products

import "github.com/dalemusser/pmhub/internal/domain/models"

// productInput is the body of create and update requests. Pointers
// distinguish absent fields from zero values.
type productInput struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	ImageURL      *string  `json:"imageUrl"`
	StockQuantity *int     `json:"stockQuantity"`
	InStock       *bool    `json:"inStock"`
}

type listResponse struct {
	Success     bool             `json:"success"`
	Products    []models.Product `json:"products"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product *models.Product `json:"product,omitempty"`
}

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}
