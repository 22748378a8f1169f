// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	auditfeature "github.com/dalemusser/pmhub/internal/app/features/auditlog"
	errorsfeature "github.com/dalemusser/pmhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/pmhub/internal/app/features/health"
	productsfeature "github.com/dalemusser/pmhub/internal/app/features/products"
	projectsfeature "github.com/dalemusser/pmhub/internal/app/features/projects"
	sessionfeature "github.com/dalemusser/pmhub/internal/app/features/session"
	"github.com/dalemusser/pmhub/internal/app/store/audit"
	productstore "github.com/dalemusser/pmhub/internal/app/store/products"
	projectstore "github.com/dalemusser/pmhub/internal/app/store/projects"
	"github.com/dalemusser/pmhub/internal/app/store/queries/projectquery"
	taskstore "github.com/dalemusser/pmhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/pmhub/internal/app/store/users"
	"github.com/dalemusser/pmhub/internal/app/system/auditlog"
	"github.com/dalemusser/pmhub/internal/app/system/auth"
	"github.com/dalemusser/pmhub/internal/app/system/limits"
	"github.com/dalemusser/pmhub/internal/app/system/ratelimit"
	"github.com/dalemusser/pmhub/internal/app/system/txn"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Everything is mounted under /api; when
// static_dir is set the built client is served for every other path.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	am, err := auth.NewManager(appCfg.JWTSecret, appCfg.SessionKey, appCfg.SessionName, secure, logger)
	if err != nil {
		logger.Error("auth manager init failed", zap.Error(err))
		return nil, err
	}

	rt := deps.Runtime
	if rt == nil {
		rt = &Runtime{}
	}
	db := deps.MongoDatabase

	if appCfg.RateLimitPerMinute > 0 {
		rt.Limiter = ratelimit.New(appCfg.RateLimitPerMinute, time.Minute)
	}

	users := userstore.New(db)

	projectSvc := projectsfeature.NewService(projectsfeature.Deps{
		Projects: projectsfeature.NewGuardedProjects(projectstore.New(db), rt.Breaker),
		Tasks:    projectsfeature.NewGuardedTasks(taskstore.New(db), rt.Breaker),
		Users:    projectsfeature.NewGuardedUsers(users, rt.Breaker),
		Tx:       txn.NewRunner(db, logger),
		Audit:    rt.AuditLog,
		Log:      logger,
		Query: projectquery.Options{
			ScopePolicy:  appCfg.SearchScopePolicy,
			DefaultLimit: appCfg.DefaultPageLimit,
			MaxLimit:     appCfg.MaxPageLimit,
		},
	})

	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	if len(appCfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Request metadata for audit events, then the caller identity.
	r.Use(auditlog.Middleware)
	r.Use(am.LoadUser)
	r.Use(limits.Body(limits.MaxJSONBody))

	r.Route("/api", func(api chi.Router) {
		healthHandler := healthfeature.NewHandler(deps.MongoClient, rt.Breaker, logger)
		api.Mount("/health", healthfeature.Routes(healthHandler))

		api.Group(func(g chi.Router) {
			g.Use(ratelimit.Middleware(rt.Limiter, logger))

			projectsHandler := projectsfeature.NewHandler(projectSvc, logger)
			g.Mount("/projects", projectsfeature.Routes(projectsHandler, am))

			productsHandler := productsfeature.NewHandler(
				productsfeature.NewGuardedStore(productstore.New(db), rt.Breaker),
				appCfg.DefaultPageLimit, appCfg.MaxPageLimit, logger)
			g.Mount("/products", productsfeature.Routes(productsHandler))

			sessionHandler := sessionfeature.NewHandler(am, rt.AuditLog, logger)
			g.Mount("/session", sessionfeature.Routes(sessionHandler, am))

			adminHandler := auditfeature.NewHandler(audit.New(db), users, rt.Repair, logger)
			g.Mount("/admin", auditfeature.Routes(adminHandler, am))
		})

		api.NotFound(errorsHandler.NotFound)
		api.MethodNotAllowed(errorsHandler.MethodNotAllowed)
	})

	if appCfg.StaticDir != "" {
		mountClient(r, appCfg.StaticDir, errorsHandler.NotFound, logger)
	} else {
		r.NotFound(errorsHandler.NotFound)
	}
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	return r, nil
}
