// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/pmhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll, log); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				log.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
			return
		}
		log.Info("validator ensured", zap.String("collection", coll))
	}

	ensure("users", usersSchema())
	ensure("projects", projectsSchema())
	ensure("tasks", tasksSchema())
	ensure("products", productsSchema())

	// Append-only; no validator.
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func ensureCollection(ctx context.Context, db *mongo.Database, name string, log *zap.Logger) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		log.Debug("collection exists", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		log.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	log.Info("created collection", zap.String("collection", name))
	return nil
}

// moderate: existing documents that already violate the schema can still
// be updated; new and valid documents are checked.
func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

/* ------------------------- error helpers ------------------------- */

func commandErr(err error, codes ...int32) (mongo.CommandError, bool) {
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		return ce, false
	}
	for _, c := range codes {
		if ce.Code == c {
			return ce, true
		}
	}
	return ce, false
}

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := commandErr(err, 48); ok {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

// isUnsupported reports "no such command" (59) and "not implemented" (115)
// style failures.
func isUnsupported(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := commandErr(err, 59, 115); ok {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "no such command") ||
		strings.Contains(s, "not implemented") ||
		strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enum(values []string) bson.M {
	a := make(bson.A, len(values))
	for i, v := range values {
		a[i] = v
	}
	return bson.M{"enum": a}
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "role"},
			"properties": bson.M{
				"name":          nonBlank,
				"email":         nonBlank,
				"role":          enum([]string{"admin", "manager", "developer"}),
				"password_hash": bson.M{"bsonType": "string"},
			},
		},
	}
}

func projectsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "status", "priority", "manager", "team", "is_active", "created_at"},
			"properties": bson.M{
				"name":      bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200, "pattern": ".*\\S.*"},
				"status":    enum(models.ProjectStatuses),
				"priority":  enum(models.Priorities),
				"manager":   bson.M{"bsonType": "objectId"},
				"is_active": bson.M{"bsonType": "bool"},
				"team": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"user", "role"},
						"properties": bson.M{
							"user": bson.M{"bsonType": "objectId"},
							"role": bson.M{"bsonType": "string"},
						},
					},
				},
				"start_date": bson.M{"bsonType": bson.A{"date", "null"}},
				"end_date":   bson.M{"bsonType": bson.A{"date", "null"}},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func tasksSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"project", "title", "status", "priority", "created_by", "is_active"},
			"properties": bson.M{
				"project":     bson.M{"bsonType": "objectId"},
				"title":       nonBlank,
				"status":      enum(models.TaskStatuses),
				"priority":    enum(models.Priorities),
				"assigned_to": bson.M{"bsonType": bson.A{"objectId", "null"}},
				"created_by":  bson.M{"bsonType": "objectId"},
				"is_active":   bson.M{"bsonType": "bool"},
			},
		},
	}
}

func productsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "price", "description", "category"},
			"properties": bson.M{
				"name":           nonBlank,
				"price":          bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"description":    bson.M{"bsonType": "string"},
				"category":       nonBlank,
				"stock_quantity": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"in_stock":       bson.M{"bsonType": "bool"},
			},
		},
	}
}
