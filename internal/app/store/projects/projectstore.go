// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Patch holds the project fields an update may change. Nil fields are left
// untouched. Manager, team, active flag, and creation time are not patchable.
type Patch struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.StartDate == nil && p.EndDate == nil
}

// Apply returns a copy of proj with the patch applied.
func (p Patch) Apply(proj models.Project) models.Project {
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.Description != nil {
		proj.Description = *p.Description
	}
	if p.Status != nil {
		proj.Status = *p.Status
	}
	if p.Priority != nil {
		proj.Priority = *p.Priority
	}
	if p.StartDate != nil {
		d := *p.StartDate
		proj.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		proj.EndDate = &d
	}
	return proj
}

// GetActive loads a live project. Inactive and missing projects both
// return mongo.ErrNoDocuments.
func (s *Store) GetActive(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project regardless of its active flag.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// List returns one page of projects matching spec and the total number of
// matches across all pages.
func (s *Store) List(ctx context.Context, spec projectquery.FilterSpec) ([]models.Project, int64, error) {
	filter := spec.BSON()

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, filter, spec.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]models.Project, 0, spec.Page.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Create inserts p as a new active project. ID and timestamps are assigned
// here; a nil team is stored as an empty array.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Team == nil {
		p.Team = []models.TeamMember{}
	}
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update applies patch to a live project. Returns mongo.ErrNoDocuments if
// the project is missing or inactive.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch Patch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.StartDate != nil {
		set["start_date"] = patch.StartDate.UTC()
	}
	if patch.EndDate != nil {
		set["end_date"] = patch.EndDate.UTC()
	}
	return s.updateActive(ctx, id, set)
}

// SetTeam replaces the team of a live project. The whole array is written,
// so concurrent team edits resolve as last write wins.
func (s *Store) SetTeam(ctx context.Context, id primitive.ObjectID, team []models.TeamMember) error {
	if team == nil {
		team = []models.TeamMember{}
	}
	return s.updateActive(ctx, id, bson.M{
		"team":       team,
		"updated_at": time.Now().UTC(),
	})
}

// Deactivate soft-deletes a live project.
func (s *Store) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return s.updateActive(ctx, id, bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	})
}

// ActiveIDs returns the subset of ids that belong to live projects.
func (s *Store) ActiveIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	raw, err := s.c.Distinct(ctx, "_id", bson.M{"_id": bson.M{"$in": ids}, "is_active": true})
	if err != nil {
		return nil, err
	}
	for _, v := range raw {
		if oid, ok := v.(primitive.ObjectID); ok {
			out[oid] = true
		}
	}
	return out, nil
}

func (s *Store) updateActive(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "is_active": true}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
