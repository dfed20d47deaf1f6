package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/jobmatch-api/internal/api/middleware"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// RouterConfig holds everything NewRouter mounts.
type RouterConfig struct {
	Auth     *AuthHandler
	Accounts *AccountHandler
	Jobs     *JobHandler
	Catalog  *CatalogHandler
	Matches  *MatchHandler

	// Qualifications serves skill links and company requirements.
	Qualifications *QualificationHandler

	Verifier     middleware.TokenVerifier
	LoginLimiter *middleware.RateLimiter

	// MetricsHandler, when set, is served on /metrics and request metrics are recorded.
	MetricsHandler http.Handler
	// HealthCheck, when set, decides the status of /health.
	HealthCheck func(r *http.Request) error

	Logger *slog.Logger
}

// NewRouter builds the HTTP handler of the API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(cfg.Logger))
	r.Use(chimw.Recoverer)
	if cfg.MetricsHandler != nil {
		r.Use(middleware.Metrics)
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(req); err != nil {
				HandleAPIError(w, req, err)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authn := middleware.NewAuthMiddleware(cfg.Verifier)
	companyOnly := middleware.RequireRole(domain.RoleCompany)
	professionalOnly := middleware.RequireRole(domain.RoleProfessional)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.LoginLimiter != nil {
				r.Use(cfg.LoginLimiter.Middleware)
			}
			r.Post("/auth/login", cfg.Auth.Login)
		})
		r.Post("/auth/refresh", cfg.Auth.Refresh)

		// Public reads and registration
		r.Post("/professionals", cfg.Accounts.RegisterProfessional)
		r.Get("/professionals", cfg.Accounts.ListProfessionals)
		r.Get("/professionals/{professionalID}", cfg.Accounts.GetProfessional)
		r.Post("/companies", cfg.Accounts.RegisterCompany)
		r.Get("/companies", cfg.Accounts.ListCompanies)
		r.Get("/companies/{companyID}", cfg.Accounts.GetCompany)
		r.Get("/job-ads", cfg.Jobs.ListJobAds)
		r.Get("/job-ads/{jobAdID}", cfg.Jobs.GetJobAd)
		r.Get("/job-ads/{jobAdID}/skills", cfg.Qualifications.ListJobAdSkills)
		r.Get("/job-ads/{jobAdID}/requirements", cfg.Qualifications.ListJobAdRequirements)
		r.Get("/job-applications", cfg.Jobs.ListJobApplications)
		r.Get("/job-applications/{jobApplicationID}", cfg.Jobs.GetJobApplication)
		r.Get("/job-applications/{jobApplicationID}/skills", cfg.Qualifications.ListJobApplicationSkills)
		r.Get("/categories", cfg.Catalog.ListCategories)
		r.Get("/categories/{categoryID}/skills", cfg.Catalog.ListCategorySkills)
		r.Get("/skills", cfg.Catalog.ListSkills)
		r.Get("/cities", cfg.Catalog.ListCities)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Post("/categories", cfg.Catalog.CreateCategory)
			r.Post("/categories/{categoryID}/skills", cfg.Catalog.CreateSkill)

			r.Group(func(r chi.Router) {
				r.Use(companyOnly)
				r.Get("/companies/me", cfg.Accounts.Me)
				r.Get("/companies/me/job-ads", cfg.Jobs.ListOwnJobAds)
				r.Get("/companies/me/match-requests", cfg.Matches.ListMine)
				r.Get("/companies/me/requirements", cfg.Qualifications.ListOwnRequirements)
				r.Post("/companies/me/requirements", cfg.Qualifications.CreateRequirement)
				r.Post("/job-ads", cfg.Jobs.CreateJobAd)
				r.Put("/job-ads/{jobAdID}", cfg.Jobs.UpdateJobAd)
				r.Put("/job-ads/{jobAdID}/skills/{skillID}", cfg.Qualifications.AddJobAdSkill)
				r.Delete("/job-ads/{jobAdID}/skills/{skillID}", cfg.Qualifications.RemoveJobAdSkill)
				r.Put("/job-ads/{jobAdID}/requirements/{requirementID}", cfg.Qualifications.AttachRequirement)
				r.Delete("/job-ads/{jobAdID}/requirements/{requirementID}", cfg.Qualifications.DetachRequirement)
				r.Patch("/job-ads/{jobAdID}/status", cfg.Jobs.UpdateJobAdStatus)
				r.Post("/job-ads/{jobAdID}/match-requests/{jobApplicationID}", cfg.Matches.RequestFromJobAd)
				r.Put("/job-ads/{jobAdID}/match-requests/{jobApplicationID}", cfg.Matches.RespondAsJobAd)
				r.Get("/job-ads/{jobAdID}/match-requests/received", cfg.Matches.ListReceivedByJobAd)
				r.Get("/job-ads/{jobAdID}/match-requests/sent", cfg.Matches.ListSentByJobAd)
			})

			r.Group(func(r chi.Router) {
				r.Use(professionalOnly)
				r.Get("/professionals/me", cfg.Accounts.Me)
				r.Put("/professionals/me", cfg.Accounts.UpdateMe)
				r.Get("/professionals/me/match-requests", cfg.Matches.ListMine)
				r.Post("/job-applications", cfg.Jobs.CreateJobApplication)
				r.Put("/job-applications/{jobApplicationID}/skills/{skillID}", cfg.Qualifications.AddJobApplicationSkill)
				r.Delete("/job-applications/{jobApplicationID}/skills/{skillID}",
					cfg.Qualifications.RemoveJobApplicationSkill)
				r.Patch("/job-applications/{jobApplicationID}/status", cfg.Jobs.UpdateJobApplicationStatus)
				r.Get("/job-applications/{jobApplicationID}/match-requests", cfg.Matches.ListForJobApplication)
				r.Post("/job-applications/{jobApplicationID}/match-requests/{jobAdID}",
					cfg.Matches.RequestFromJobApplication)
				r.Put("/job-applications/{jobApplicationID}/match-requests/{jobAdID}",
					cfg.Matches.RespondAsJobApplication)
			})
		})
	})

	return r
}
