// internal/domain/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is an entry of the public catalog. The catalog has no ownership
// or visibility rules.
type Product struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	ImageURL      string             `bson:"image_url" json:"imageUrl"`
	StockQuantity int                `bson:"stock_quantity" json:"stockQuantity"`
	InStock       bool               `bson:"in_stock" json:"inStock"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
