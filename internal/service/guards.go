package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// Guards resolve entities by id and check who owns them. A missing entity is
// NotFound; an entity owned by someone else is BadRequest.
type Guards struct {
	professionals store.ProfessionalStore
	companies     store.CompanyStore
	jobAds        store.JobAdStore
	jobApps       store.JobApplicationStore
	catalog       store.CatalogStore
	logger        *slog.Logger
}

// GuardStores groups the stores Guards read from.
type GuardStores struct {
	Professionals   store.ProfessionalStore
	Companies       store.CompanyStore
	JobAds          store.JobAdStore
	JobApplications store.JobApplicationStore
	Catalog         store.CatalogStore
}

// NewGuards creates Guards over the given stores.
func NewGuards(s GuardStores, logger *slog.Logger) *Guards {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guards{
		professionals: s.Professionals,
		companies:     s.Companies,
		jobAds:        s.JobAds,
		jobApps:       s.JobApplications,
		catalog:       s.Catalog,
		logger:        logger.With(slog.String("component", "guards")),
	}
}

// WithTx returns Guards reading through tx.
func (g *Guards) WithTx(tx *sql.Tx) *Guards {
	return &Guards{
		professionals: g.professionals.WithTx(tx),
		companies:     g.companies.WithTx(tx),
		jobAds:        g.jobAds.WithTx(tx),
		jobApps:       g.jobApps.WithTx(tx),
		catalog:       g.catalog,
		logger:        g.logger,
	}
}

// EnsureProfessional returns the professional with id.
func (g *Guards) EnsureProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	p, err := g.professionals.GetByID(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Professional with id %s not found", id)
	}
	return p, nil
}

// EnsureCompany returns the company with id.
func (g *Guards) EnsureCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	c, err := g.companies.GetByID(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Company with id %s not found", id)
	}
	return c, nil
}

// EnsureJobAd returns the job ad with id. When companyID is not nil the ad
// must belong to that company.
func (g *Guards) EnsureJobAd(ctx context.Context, id uuid.UUID, companyID *uuid.UUID) (*domain.JobAd, error) {
	ad, err := g.jobAds.GetByID(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Job Ad with id %s not found", id)
	}
	if companyID != nil && ad.CompanyID != *companyID {
		logger.FromContextOrDefault(ctx, g.logger).Warn("job ad ownership mismatch",
			slog.String("job_ad_id", id.String()),
			slog.String("company_id", companyID.String()))
		return nil, domain.BadRequest("Job Ad with id %s does not belong to company with id %s", id, *companyID)
	}
	return ad, nil
}

// EnsureJobApplication returns the job application with id. When
// professionalID is not nil the application must belong to that professional.
func (g *Guards) EnsureJobApplication(
	ctx context.Context,
	id uuid.UUID,
	professionalID *uuid.UUID,
) (*domain.JobApplication, error) {
	app, err := g.jobApps.GetByID(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Job Application with id %s not found", id)
	}
	if professionalID != nil && app.ProfessionalID != *professionalID {
		logger.FromContextOrDefault(ctx, g.logger).Warn("job application ownership mismatch",
			slog.String("job_application_id", id.String()),
			slog.String("professional_id", professionalID.String()))
		return nil, domain.BadRequest(
			"Job Application with id %s does not belong to professional with id %s", id, *professionalID)
	}
	return app, nil
}

// EnsureCategory returns the category with id.
func (g *Guards) EnsureCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, err := g.catalog.GetCategory(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Category with id %s not found", id)
	}
	return c, nil
}

// EnsureSkill returns the skill with id.
func (g *Guards) EnsureSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	sk, err := g.catalog.GetSkill(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "Skill with id %s not found", id)
	}
	return sk, nil
}

// EnsureCity returns the city with id.
func (g *Guards) EnsureCity(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	c, err := g.catalog.GetCity(ctx, id)
	if err != nil {
		return nil, g.translate(ctx, err, "City with id %s not found", id)
	}
	return c, nil
}

func (g *Guards) translate(ctx context.Context, err error, format string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, g.logger)
	if store.IsNotFoundError(err) {
		log.Debug("entity not found", slog.String("id", id.String()))
		return domain.NotFound(format, id)
	}
	return Translate(log, err, "")
}
