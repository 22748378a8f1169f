// Command pmseed loads sample users, catalog products and projects into a
// pmhub database. It is safe to run repeatedly: users are upserted by
// email, the catalog is replaced, and projects are only created for a
// manager that has none.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	taskstore "github.com/dalemusser/pmhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/pmhub/internal/app/store/users"
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/dalemusser/pmhub/internal/app/system/indexes"
	"github.com/dalemusser/pmhub/internal/app/system/validators"
	"github.com/dalemusser/pmhub/internal/domain/models"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type flags struct {
	envFile     string
	mongoURI    string
	database    string
	password    string
	keepCatalog bool
	noProjects  bool
	printTokens bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flagSet := pflag.NewFlagSet("pmseed", pflag.ContinueOnError)
	flagSet.StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading PMHUB_* variables")
	flagSet.StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB URI (default: $PMHUB_MONGO_URI or mongodb://localhost:27017)")
	flagSet.StringVar(&f.database, "database", "", "database name (default: $PMHUB_MONGO_DATABASE or pmhub)")
	flagSet.StringVar(&f.password, "password", "password123", "password given to every sample user")
	flagSet.BoolVar(&f.keepCatalog, "keep-catalog", false, "do not clear existing products before inserting samples")
	flagSet.BoolVar(&f.noProjects, "no-projects", false, "skip sample projects and tasks")
	flagSet.BoolVar(&f.printTokens, "print-tokens", false, "print a 24h bearer token per user (needs $PMHUB_JWT_SECRET)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(f.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", f.envFile, err)
	}
	f.mongoURI = firstNonEmpty(f.mongoURI, os.Getenv("PMHUB_MONGO_URI"), "mongodb://localhost:27017")
	f.database = firstNonEmpty(f.database, os.Getenv("PMHUB_MONGO_DATABASE"), "pmhub")

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(f.mongoURI))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	db := client.Database(f.database)
	logger.Info("connected", zap.String("database", f.database))

	if err := validators.EnsureAll(ctx, db, logger); err != nil {
		return fmt.Errorf("validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}

	users, err := seedUsers(ctx, userstore.New(db), f.password, logger)
	if err != nil {
		return err
	}
	if err := seedProducts(ctx, productstore.New(db), !f.keepCatalog, logger); err != nil {
		return err
	}
	if !f.noProjects {
		if err := seedProjects(ctx, db, users, logger); err != nil {
			return err
		}
	}
	if f.printTokens {
		if err := printTokens(users, logger); err != nil {
			return err
		}
	}

	logger.Info("database seeded successfully")
	return nil
}

// seededUsers groups the seeded users by role.
type seededUsers map[string][]models.User

func seedUsers(ctx context.Context, store *userstore.Store, password string, logger *zap.Logger) (seededUsers, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	out := seededUsers{}
	for _, su := range sampleUsers {
		u, err := store.UpsertByEmail(ctx, models.User{
			Name:         su.Name,
			Email:        su.Email,
			Role:         su.Role,
			PasswordHash: string(hash),
		})
		if err != nil {
			return nil, fmt.Errorf("upsert user %s: %w", su.Email, err)
		}
		out[u.Role] = append(out[u.Role], u)
		logger.Info("user ready", zap.String("email", u.Email), zap.String("role", u.Role))
	}
	return out, nil
}

func seedProducts(ctx context.Context, store *productstore.Store, reset bool, logger *zap.Logger) error {
	if reset {
		n, err := store.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		logger.Info("cleared existing products", zap.Int64("deleted", n))
	}
	for _, p := range sampleProducts {
		created, err := store.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		logger.Info("product added",
			zap.String("name", created.Name),
			zap.Float64("price", created.Price),
			zap.String("category", created.Category))
	}
	return nil
}

func seedProjects(ctx context.Context, db *mongo.Database, users seededUsers, logger *zap.Logger) error {
	managers := users["manager"]
	if len(managers) == 0 {
		return errors.New("no manager seeded")
	}
	manager := managers[0]

	n, err := db.Collection("projects").CountDocuments(ctx, bson.M{"manager": manager.ID, "is_active": true})
	if err != nil {
		return fmt.Errorf("count projects: %w", err)
	}
	if n > 0 {
		logger.Info("projects already seeded", zap.Int64("count", n))
		return nil
	}

	projects := projectstore.New(db)
	tasks := taskstore.New(db)
	devs := users["developer"]

	for i, sp := range sampleProjects {
		var team []models.TeamMember
		// Rotate developers so each one sees a different subset.
		if len(devs) > 0 {
			team = append(team, models.TeamMember{User: devs[i%len(devs)].ID, Role: models.DefaultTeamRole})
		}
		p, err := projects.Create(ctx, models.Project{
			Name:        sp.Name,
			Description: sp.Description,
			Status:      sp.Status,
			Priority:    sp.Priority,
			Manager:     manager.ID,
			Team:        team,
		})
		if err != nil {
			return fmt.Errorf("insert project %q: %w", sp.Name, err)
		}
		for _, title := range sp.Tasks {
			t := models.Task{Project: p.ID, Title: title, Priority: sp.Priority, CreatedBy: manager.ID}
			if len(team) > 0 {
				assignee := team[0].User
				t.AssignedTo = &assignee
			}
			if _, err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("insert task %q: %w", title, err)
			}
		}
		logger.Info("project added", zap.String("name", p.Name), zap.Int("tasks", len(sp.Tasks)))
	}
	return nil
}

func printTokens(users seededUsers, logger *zap.Logger) error {
	secret := os.Getenv("PMHUB_JWT_SECRET")
	if secret == "" {
		return errors.New("--print-tokens needs PMHUB_JWT_SECRET")
	}
	am, err := auth.NewManager(secret, "", "pmhub-session", false, zap.NewNop())
	if err != nil {
		return err
	}
	for _, role := range []string{"admin", "manager", "developer"} {
		for _, u := range users[role] {
			tok, err := am.IssueToken(auth.SessionUser{
				ID:    u.ID.Hex(),
				Name:  u.Name,
				Email: u.Email,
				Role:  u.Role,
			}, 24*time.Hour)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %-24s %s\n", u.Role, u.Email, tok)
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
