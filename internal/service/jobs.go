package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// JobAdInput is the data of a new job ad.
type JobAdInput struct {
	CategoryID  uuid.UUID
	CityID      uuid.UUID
	Title       string
	Description string
	Salary      domain.SalaryRange
}

// JobAdUpdate holds the job ad fields to change. Nil fields keep their value.
type JobAdUpdate struct {
	CategoryID  *uuid.UUID
	CityID      *uuid.UUID
	Title       *string
	Description *string
	MinSalary   *int
	MaxSalary   *int
	Status      *domain.JobAdStatus
}

// JobApplicationInput is the data of a new job application.
type JobApplicationInput struct {
	CategoryID  uuid.UUID
	CityID      uuid.UUID
	Name        string
	Description string
	Salary      domain.SalaryRange
	IsMain      bool
}

// JobService manages job ads and job applications.
type JobService struct {
	jobAds  store.JobAdStore
	jobApps store.JobApplicationStore
	guards  *Guards
	logger  *slog.Logger
}

// NewJobService creates a JobService.
func NewJobService(
	jobAds store.JobAdStore,
	jobApps store.JobApplicationStore,
	guards *Guards,
	logger *slog.Logger,
) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		jobAds:  jobAds,
		jobApps: jobApps,
		guards:  guards,
		logger:  logger.With(slog.String("component", "job_service")),
	}
}

// CreateJobAd publishes an active job ad owned by companyID.
func (s *JobService) CreateJobAd(ctx context.Context, companyID uuid.UUID, in JobAdInput) (*domain.JobAd, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, in.CategoryID, in.CityID); err != nil {
		return nil, err
	}

	ad, err := domain.NewJobAd(companyID, in.CategoryID, in.CityID, in.Title, in.Description, in.Salary)
	if err != nil {
		return nil, err
	}
	if err := s.jobAds.Create(ctx, ad); err != nil {
		return nil, Translate(log, err, "")
	}

	log.Info("job ad created",
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("company_id", companyID.String()))
	return ad, nil
}

// GetJobAd returns the job ad with id.
func (s *JobService) GetJobAd(ctx context.Context, id uuid.UUID) (*domain.JobAd, error) {
	return s.guards.EnsureJobAd(ctx, id, nil)
}

// ListJobAds returns active job ads, optionally in one category.
func (s *JobService) ListJobAds(ctx context.Context, categoryID uuid.UUID, page store.Page) ([]*domain.JobAd, error) {
	ads, err := s.jobAds.List(ctx, store.JobAdFilter{
		CategoryID: categoryID,
		Status:     domain.JobAdStatusActive,
		Page:       page.Normalize(),
	})
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return ads, nil
}

// ListCompanyJobAds returns every job ad of one company regardless of status.
func (s *JobService) ListCompanyJobAds(ctx context.Context, companyID uuid.UUID, page store.Page) ([]*domain.JobAd, error) {
	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	ads, err := s.jobAds.List(ctx, store.JobAdFilter{CompanyID: companyID, Page: page.Normalize()})
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return ads, nil
}

// UpdateJobAdStatus sets the status of a job ad owned by companyID.
func (s *JobService) UpdateJobAdStatus(
	ctx context.Context,
	companyID, jobAdID uuid.UUID,
	status domain.JobAdStatus,
) (*domain.JobAd, error) {
	if !status.IsValid() {
		return nil, domain.BadRequest("Invalid job ad status %q", status)
	}
	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID)
	if err != nil {
		return nil, err
	}
	if err := s.jobAds.UpdateStatus(ctx, jobAdID, status); err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	ad.Status = status
	return ad, nil
}

// UpdateJobAd applies in to a job ad owned by companyID.
func (s *JobService) UpdateJobAd(
	ctx context.Context,
	companyID, jobAdID uuid.UUID,
	in JobAdUpdate,
) (*domain.JobAd, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if _, err := s.guards.EnsureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		ad.CategoryID = *in.CategoryID
	}
	if in.CityID != nil {
		if _, err := s.guards.EnsureCity(ctx, *in.CityID); err != nil {
			return nil, err
		}
		ad.CityID = *in.CityID
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, domain.BadRequest("Invalid job ad status %q", *in.Status)
		}
		ad.Status = *in.Status
	}
	if in.Title != nil {
		ad.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		ad.Description = *in.Description
	}
	if in.MinSalary != nil {
		ad.Min = *in.MinSalary
	}
	if in.MaxSalary != nil {
		ad.Max = *in.MaxSalary
	}
	ad.UpdatedAt = time.Now().UTC()

	if err := ad.Validate(); err != nil {
		return nil, err
	}
	if err := s.jobAds.Update(ctx, ad); err != nil {
		return nil, Translate(log, err, "Job Ad with id "+jobAdID.String()+" not found")
	}

	log.Info("job ad updated",
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("company_id", companyID.String()))
	return ad, nil
}

// CreateJobApplication publishes an active job application owned by professionalID.
func (s *JobService) CreateJobApplication(
	ctx context.Context,
	professionalID uuid.UUID,
	in JobApplicationInput,
) (*domain.JobApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guards.EnsureProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, in.CategoryID, in.CityID); err != nil {
		return nil, err
	}

	app, err := domain.NewJobApplication(
		professionalID, in.CategoryID, in.CityID, in.Name, in.Description, in.Salary, in.IsMain)
	if err != nil {
		return nil, err
	}
	if err := s.jobApps.Create(ctx, app); err != nil {
		return nil, Translate(log, err, "")
	}

	log.Info("job application created",
		slog.String("job_application_id", app.ID.String()),
		slog.String("professional_id", professionalID.String()))
	return app, nil
}

// GetJobApplication returns the job application with id.
func (s *JobService) GetJobApplication(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return s.guards.EnsureJobApplication(ctx, id, nil)
}

// ListJobApplications returns active job applications, optionally in one category.
func (s *JobService) ListJobApplications(
	ctx context.Context,
	categoryID uuid.UUID,
	page store.Page,
) ([]*domain.JobApplication, error) {
	apps, err := s.jobApps.List(ctx, store.JobApplicationFilter{
		CategoryID: categoryID,
		Status:     domain.JobApplicationStatusActive,
		Page:       page.Normalize(),
	})
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return apps, nil
}

// UpdateJobApplicationStatus sets the status of a job application owned by
// professionalID. The matched status is reserved for accepted matches.
func (s *JobService) UpdateJobApplicationStatus(
	ctx context.Context,
	professionalID, jobApplicationID uuid.UUID,
	status domain.JobApplicationStatus,
) (*domain.JobApplication, error) {
	if !status.IsValid() {
		return nil, domain.BadRequest("Invalid job application status %q", status)
	}
	if status == domain.JobApplicationStatusMatched {
		return nil, domain.Forbidden("Job Application status cannot be set to matched manually")
	}
	app, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID)
	if err != nil {
		return nil, err
	}
	if app.Status == domain.JobApplicationStatusMatched {
		return nil, domain.Forbidden("Job Application with id %s is already matched", jobApplicationID)
	}
	if err := s.jobApps.UpdateStatus(ctx, jobApplicationID, status); err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	app.Status = status
	return app, nil
}

func (s *JobService) ensureReferences(ctx context.Context, categoryID, cityID uuid.UUID) error {
	if _, err := s.guards.EnsureCategory(ctx, categoryID); err != nil {
		return err
	}
	_, err := s.guards.EnsureCity(ctx, cityID)
	return err
}
