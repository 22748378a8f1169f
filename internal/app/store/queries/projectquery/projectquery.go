// Package projectquery builds the filter behind the project list.
//
// Build is pure: it turns a caller and the request parameters into a
// FilterSpec without touching the database. The store renders the spec
// with BSON and FindOptions.
package projectquery

import (
	"regexp"
	"strings"

	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScopePolicy decides how the developer visibility restriction interacts
// with a free-text search.
type ScopePolicy string

const (
	// ScopeReplace drops the search clause when the caller is scoped.
	// Developers searching see every project they belong to.
	ScopeReplace ScopePolicy = "replace"
	// ScopeCombine requires both the search clause and the scope.
	ScopeCombine ScopePolicy = "combine"
)

// ParseScopePolicy maps a config value to a ScopePolicy.
// ok is false for anything other than "replace" or "combine".
func ParseScopePolicy(s string) (ScopePolicy, bool) {
	switch ScopePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeReplace, "":
		return ScopeReplace, true
	case ScopeCombine:
		return ScopeCombine, true
	}
	return ScopeReplace, false
}

// Params are the client-supplied list parameters. Zero values mean absent.
type Params struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// Options are server-side settings that shape every list query.
type Options struct {
	ScopePolicy  ScopePolicy
	DefaultLimit int
	MaxLimit     int
}

// FilterSpec is the structured form of a project list query.
type FilterSpec struct {
	Status   string
	Priority string
	Search   string

	// ScopeUser restricts results to projects the user manages or is a
	// team member of. Nil means no restriction.
	ScopeUser *primitive.ObjectID
	Policy    ScopePolicy

	Page paging.Page
}

// Build derives the FilterSpec for caller and p.
func Build(caller authz.Caller, p Params, opt Options) FilterSpec {
	policy := opt.ScopePolicy
	if policy == "" {
		policy = ScopeReplace
	}

	spec := FilterSpec{
		Status:   strings.TrimSpace(p.Status),
		Priority: strings.TrimSpace(p.Priority),
		Search:   strings.TrimSpace(p.Search),
		Policy:   policy,
		Page:     paging.Normalize(p.Page, p.Limit, opt.DefaultLimit, opt.MaxLimit),
	}

	// Admins and managers see every active project; anyone else is limited
	// to projects they manage or belong to.
	if caller.Role != authz.RoleAdmin && caller.Role != authz.RoleManager {
		id := caller.ID
		spec.ScopeUser = &id
	}
	return spec
}

// SearchApplies reports whether the search clause survives into the query.
func (f FilterSpec) SearchApplies() bool {
	if f.Search == "" {
		return false
	}
	return f.ScopeUser == nil || f.Policy == ScopeCombine
}

// BSON renders the Mongo filter.
func (f FilterSpec) BSON() bson.M {
	filter := bson.M{"is_active": true}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}

	var search, scope bson.A
	if f.SearchApplies() {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		search = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
		}
	}
	if f.ScopeUser != nil {
		scope = bson.A{
			bson.M{"manager": *f.ScopeUser},
			bson.M{"team.user": *f.ScopeUser},
		}
	}

	switch {
	case search != nil && scope != nil:
		filter["$and"] = bson.A{
			bson.M{"$or": search},
			bson.M{"$or": scope},
		}
	case search != nil:
		filter["$or"] = search
	case scope != nil:
		filter["$or"] = scope
	}
	return filter
}

// Sort is the list order: newest first, with _id as a stable tiebreaker.
func Sort() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

// FindOptions returns skip, limit, and sort for the page.
func (f FilterSpec) FindOptions() *options.FindOptions {
	find := options.Find()
	f.Page.ApplyToFind(find, Sort())
	return find
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	return paging.TotalPages(total, limit)
}
