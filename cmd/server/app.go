package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/jobmatch-api/internal/api"
	"github.com/phrazzld/jobmatch-api/internal/api/middleware"
	"github.com/phrazzld/jobmatch-api/internal/cache"
	"github.com/phrazzld/jobmatch-api/internal/config"
	"github.com/phrazzld/jobmatch-api/internal/events"
	"github.com/phrazzld/jobmatch-api/internal/metrics"
	"github.com/phrazzld/jobmatch-api/internal/platform/postgres"
	"github.com/phrazzld/jobmatch-api/internal/service"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
	"github.com/phrazzld/jobmatch-api/internal/service/match"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  cache.Cache

	authService    *auth.Service
	accountService *service.AccountService
	jobService     *service.JobService
	catalogService *service.CatalogService
	matchService   *match.Service
	qualService    *service.QualificationService

	emitter      *events.InMemoryEventEmitter
	loginLimiter *middleware.RateLimiter
}

// newApplication wires stores, services and the event system over db.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{config: cfg, logger: log, db: db}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes),
		slog.Int("refresh_token_lifetime_days", cfg.Auth.RefreshTokenLifetimeDays))
	passwords := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	app.cache, err = cache.New(ctx, cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	professionals := postgres.NewPostgresProfessionalStore(db, log)
	companies := postgres.NewPostgresCompanyStore(db, log)
	jobAds := postgres.NewPostgresJobAdStore(db, log)
	jobApps := postgres.NewPostgresJobApplicationStore(db, log)
	matches := postgres.NewPostgresMatchStore(db, log)
	catalog := cache.NewCachedCatalog(
		postgres.NewPostgresCatalogStore(db, log),
		app.cache,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		log,
	)

	app.emitter = events.NewInMemoryEventEmitter(log)
	app.emitter.RegisterHandler(events.MetricsHandler())
	app.emitter.RegisterHandler(events.AuditHandler(log))

	guards := service.NewGuards(service.GuardStores{
		Professionals:   professionals,
		Companies:       companies,
		JobAds:          jobAds,
		JobApplications: jobApps,
		Catalog:         catalog,
	}, log)

	app.authService = auth.NewService(professionals, companies, jwtService, passwords, log)
	app.accountService = service.NewAccountService(professionals, companies, guards, passwords, log)
	app.jobService = service.NewJobService(jobAds, jobApps, guards, log)
	app.catalogService = service.NewCatalogService(catalog, guards, log)
	app.qualService = service.NewQualificationService(
		postgres.NewPostgresJobSkillStore(db, log),
		postgres.NewPostgresRequirementStore(db, log),
		guards,
		log,
	)
	app.matchService = match.NewService(match.Deps{
		Tx:              store.NewTxRunner(db),
		Matches:         matches,
		JobAds:          jobAds,
		JobApplications: jobApps,
		Companies:       companies,
		Guards:          guards,
		Emitter:         app.emitter,
		Logger:          log,
	})

	app.loginLimiter = middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst, 10*time.Minute)

	if cfg.Server.MetricsEnabled {
		metrics.Register()
	}

	log.Info("application initialized")
	return app, nil
}

// routes builds the HTTP handler of the application.
func (app *application) routes() http.Handler {
	cfg := api.RouterConfig{
		Auth:           api.NewAuthHandler(app.authService, app.logger),
		Accounts:       api.NewAccountHandler(app.accountService, app.logger),
		Jobs:           api.NewJobHandler(app.jobService, app.logger),
		Catalog:        api.NewCatalogHandler(app.catalogService, app.logger),
		Matches:        api.NewMatchHandler(app.matchService, app.logger),
		Qualifications: api.NewQualificationHandler(app.qualService, app.logger),
		Verifier:       app.authService,
		LoginLimiter:   app.loginLimiter,
		HealthCheck: func(r *http.Request) error {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			return app.db.PingContext(ctx)
		},
		Logger: app.logger,
	}
	if app.config.Server.MetricsEnabled {
		cfg.MetricsHandler = metrics.Handler()
	}
	return api.NewRouter(cfg)
}

// Run serves HTTP until ctx is cancelled and then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	if err := app.serve(ctx, app.routes()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the cache and the database pool.
func (app *application) cleanup() {
	if closer, ok := app.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing cache", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
