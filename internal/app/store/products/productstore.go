// internal/app/store/products/productstore.go
package productstore

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("products")}
}

// sortFields maps client sort keys to stored field names.
var sortFields = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"name":          "name",
	"price":         "price",
	"category":      "category",
	"stockQuantity": "stock_quantity",
}

// SortField returns the stored field for a client sort key. Unknown keys
// sort by creation time.
func SortField(key string) string {
	if f, ok := sortFields[key]; ok {
		return f
	}
	return "created_at"
}

// ListQuery describes one page of the catalog.
type ListQuery struct {
	Search   string // substring of name or description, case-insensitive
	Category string // substring of category, case-insensitive
	SortBy   string // client sort key, see SortField
	Asc      bool
	Page     paging.Page
}

// Filter renders the Mongo filter for q.
func (q ListQuery) Filter() bson.M {
	filter := bson.M{}
	if q.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
		}
	}
	if q.Category != "" {
		filter["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Category), Options: "i"}
	}
	return filter
}

// Sort returns the sort document for q with _id as a tiebreaker.
func (q ListQuery) Sort() bson.D {
	dir := -1
	if q.Asc {
		dir = 1
	}
	return bson.D{{Key: SortField(q.SortBy), Value: dir}, {Key: "_id", Value: dir}}
}

// List returns one page of products and the total match count.
func (s *Store) List(ctx context.Context, q ListQuery) ([]models.Product, int64, error) {
	filter := q.Filter()

	find := options.Find()
	q.Page.ApplyToFind(find, q.Sort())

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Patch holds the product fields an update may change. Nil fields are left
// untouched.
type Patch struct {
	Name          *string
	Price         *float64
	Description   *string
	Category      *string
	ImageURL      *string
	StockQuantity *int
	InStock       *bool
}

func (p Patch) set() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.ImageURL != nil {
		set["image_url"] = *p.ImageURL
	}
	if p.StockQuantity != nil {
		set["stock_quantity"] = *p.StockQuantity
	}
	if p.InStock != nil {
		set["in_stock"] = *p.InStock
	}
	return set
}

// Update applies patch and returns the updated product. A missing product
// returns mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (models.Product, error) {
	set := patch.set()
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes a product by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteAll removes every product. The seed CLI uses it to reset the catalog.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Categories returns the distinct product categories in sorted order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	vals, err := s.c.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if c, ok := v.(string); ok && c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}
