package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pmhub/internal/app/system/normalize"
	"github.com/dalemusser/pmhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"manager"|"developer"`)
	errNameNeeded     = errors.New("name is required")
	errEmailNeeded    = errors.New("email is required")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := prepare(&u); err != nil {
		return models.User{}, err
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpsertByEmail creates the user or refreshes the name, role, and password
// hash of the existing user with the same email. The seed CLI uses it so
// that reseeding is idempotent.
func (s *Store) UpsertByEmail(ctx context.Context, u models.User) (models.User, error) {
	if err := prepare(&u); err != nil {
		return models.User{}, err
	}

	set := bson.M{"name": u.Name, "role": u.Role}
	if u.PasswordHash != "" {
		set["password_hash"] = u.PasswordHash
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"email":      u.Email,
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

// SetRole changes the role of the user with id. Returns mongo.ErrNoDocuments
// if no such user exists.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	switch role {
	case "admin", "manager", "developer":
	default:
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func prepare(u *models.User) error {
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.Name == "" {
		return errNameNeeded
	}
	if u.Email == "" {
		return errEmailNeeded
	}
	switch u.Role {
	case "admin", "manager", "developer":
	default:
		return errBadRole
	}
	return nil
}
