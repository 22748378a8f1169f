// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the request does not supply one.
const DefaultLimit = 10

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Page is a normalized 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps page and limit to valid values. A page below 1 becomes 1,
// a limit below 1 becomes def, and a limit above max becomes max. A max of 0
// disables the cap.
func Normalize(page, limit, def, max int) Page {
	if def < 1 {
		def = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return Page{Number: page, Limit: limit}
}

// Offset returns the number of documents to skip for this page.
func (p Page) Offset() int64 {
	if p.Number < 1 {
		return 0
	}
	return int64(p.Number-1) * int64(p.Limit)
}

// ApplyToFind sets skip, limit, and the sort on find.
func (p Page) ApplyToFind(find *options.FindOptions, sort bson.D) {
	find.SetSkip(p.Offset())
	find.SetLimit(int64(p.Limit))
	if len(sort) > 0 {
		find.SetSort(sort)
	}
}

// TotalPages returns ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// ParseInt reads a positive integer query parameter.
// Returns 0 if not present or invalid so that Normalize applies its default.
func ParseInt(r *http.Request, key string) int {
	s := query.Get(r, key)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// FromRequest reads the "page" and "limit" query parameters.
func FromRequest(r *http.Request, def, max int) Page {
	return Normalize(ParseInt(r, "page"), ParseInt(r, "limit"), def, max)
}
