package paging

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		def        int
		max        int
		wantPage   int
		wantLimit  int
		wantOffset int64
	}{
		{"defaults", 0, 0, 10, 100, 1, 10, 0},
		{"negative page", -3, 5, 10, 100, 1, 5, 0},
		{"third page", 3, 20, 10, 100, 3, 20, 40},
		{"limit capped", 2, 500, 10, 100, 2, 100, 100},
		{"no cap", 1, 500, 10, 0, 1, 500, 0},
		{"bad default", 1, 0, 0, 0, 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.page, tt.limit, tt.def, tt.max)
			if p.Number != tt.wantPage {
				t.Errorf("Number = %d, want %d", p.Number, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", p.Limit, tt.wantLimit)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{7, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestApplyToFind(t *testing.T) {
	find := options.Find()
	Page{Number: 2, Limit: 25}.ApplyToFind(find, bson.D{{Key: "created_at", Value: -1}})

	if find.Skip == nil || *find.Skip != 25 {
		t.Errorf("Skip = %v, want 25", find.Skip)
	}
	if find.Limit == nil || *find.Limit != 25 {
		t.Errorf("Limit = %v, want 25", find.Limit)
	}
	if find.Sort == nil {
		t.Error("expected sort to be set")
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		url       string
		wantPage  int
		wantLimit int
	}{
		{"/x", 1, 10},
		{"/x?page=4&limit=3", 4, 3},
		{"/x?page=abc&limit=-1", 1, 10},
		{"/x?limit=1000", 1, 100},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		p := FromRequest(r, 10, 100)
		if p.Number != tt.wantPage || p.Limit != tt.wantLimit {
			t.Errorf("%s: got page=%d limit=%d, want page=%d limit=%d",
				tt.url, p.Number, p.Limit, tt.wantPage, tt.wantLimit)
		}
	}
}
