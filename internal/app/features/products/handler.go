// internal/app/features/products/handler.go
package products

import (
	"context"

	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the catalog persistence the handlers need.
type Store interface {
	List(ctx context.Context, q productstore.ListQuery) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, patch productstore.Patch) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}

// Handler is the feature-level entry point for the product catalog.
type Handler struct {
	Store        Store
	Log          *zap.Logger
	DefaultLimit int
	MaxLimit     int
}

// NewHandler constructs a products Handler.
func NewHandler(store Store, defaultLimit, maxLimit int, logger *zap.Logger) *Handler {
	return &Handler{
		Store:        store,
		Log:          logger,
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
	}
}
