package productstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/dalemusser/pmhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestListQuery_Filter(t *testing.T) {
	f := ListQuery{}.Filter()
	if len(f) != 0 {
		t.Errorf("empty query filter = %v", f)
	}

	f = ListQuery{Search: "c++ (pro)", Category: "elec"}.Filter()
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v", f["$or"])
	}
	rx := or[0].(bson.M)["name"].(primitive.Regex)
	if rx.Pattern != `c\+\+ \(pro\)` || rx.Options != "i" {
		t.Errorf("search regex = %+v", rx)
	}
	if cat := f["category"].(primitive.Regex); cat.Pattern != "elec" {
		t.Errorf("category regex = %+v", cat)
	}
}

func TestListQuery_Sort(t *testing.T) {
	tests := []struct {
		q     ListQuery
		field string
		dir   int
	}{
		{ListQuery{}, "created_at", -1},
		{ListQuery{SortBy: "price", Asc: true}, "price", 1},
		{ListQuery{SortBy: "stockQuantity"}, "stock_quantity", -1},
		{ListQuery{SortBy: "$where"}, "created_at", -1},
	}
	for _, tt := range tests {
		s := tt.q.Sort()
		if s[0].Key != tt.field || s[0].Value != tt.dir {
			t.Errorf("Sort(%+v) = %v", tt.q, s)
		}
	}
}

func TestStore_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	a, err := s.Create(ctx, models.Product{Name: "Wireless Headphones", Price: 79.99, Description: "Noise cancelling", Category: "Electronics", StockQuantity: 25, InStock: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, models.Product{Name: "Cotton T-Shirt", Price: 24.99, Description: "Organic", Category: "Clothing", StockQuantity: 50, InStock: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, models.Product{Name: "Desk Lamp", Price: 39.5, Description: "LED lamp with headphones hook", Category: "Home", InStock: false}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, total, err := s.List(ctx, ListQuery{Search: "HEADPHONES", Page: paging.Normalize(1, 10, 10, 100)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("search total = %d len = %d", total, len(items))
	}

	items, _, err = s.List(ctx, ListQuery{SortBy: "price", Asc: true, Page: paging.Normalize(1, 2, 10, 100)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Cotton T-Shirt" {
		t.Errorf("sorted page = %+v", items)
	}

	price := 59.99
	got, err := s.Update(ctx, a.ID, Patch{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Price != price || got.Name != a.Name {
		t.Errorf("updated = %+v", got)
	}

	_, err = s.Update(ctx, primitive.NewObjectID(), Patch{Price: &price})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("update missing: %v", err)
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 3 || cats[0] != "Clothing" {
		t.Errorf("categories = %v", cats)
	}

	n, err := s.Delete(ctx, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if _, err := s.GetByID(ctx, a.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID after delete: %v", err)
	}
}
