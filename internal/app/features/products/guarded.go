// internal/app/features/products/guarded.go
package products

import (
	"context"

	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	"github.com/dalemusser/pmhub/internal/app/system/breaker"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuardedStore routes catalog store calls through a circuit breaker.
type GuardedStore struct {
	s *productstore.Store
	b *breaker.Breaker
}

// NewGuardedStore wraps s with b. A nil breaker passes calls through.
func NewGuardedStore(s *productstore.Store, b *breaker.Breaker) *GuardedStore {
	return &GuardedStore{s: s, b: b}
}

func (g *GuardedStore) List(ctx context.Context, q productstore.ListQuery) ([]models.Product, int64, error) {
	type page struct {
		items []models.Product
		total int64
	}
	out, err := breaker.Call(g.b, func() (page, error) {
		items, total, err := g.s.List(ctx, q)
		return page{items, total}, err
	})
	return out.items, out.total, err
}

func (g *GuardedStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return breaker.Call(g.b, func() (models.Product, error) { return g.s.GetByID(ctx, id) })
}

func (g *GuardedStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return breaker.Call(g.b, func() (models.Product, error) { return g.s.Create(ctx, p) })
}

func (g *GuardedStore) Update(ctx context.Context, id primitive.ObjectID, patch productstore.Patch) (models.Product, error) {
	return breaker.Call(g.b, func() (models.Product, error) { return g.s.Update(ctx, id, patch) })
}

func (g *GuardedStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return breaker.Call(g.b, func() (int64, error) { return g.s.Delete(ctx, id) })
}

func (g *GuardedStore) Categories(ctx context.Context) ([]string, error) {
	return breaker.Call(g.b, func() ([]string, error) { return g.s.Categories(ctx) })
}
