package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// QualificationService manages the skills of job ads and job applications
// and the requirements companies attach to their job ads.
type QualificationService struct {
	skills       store.JobSkillStore
	requirements store.RequirementStore
	guards       *Guards
	logger       *slog.Logger
}

// NewQualificationService creates a QualificationService.
func NewQualificationService(
	skills store.JobSkillStore,
	requirements store.RequirementStore,
	guards *Guards,
	logger *slog.Logger,
) *QualificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QualificationService{
		skills:       skills,
		requirements: requirements,
		guards:       guards,
		logger:       logger.With(slog.String("component", "qualification_service")),
	}
}

// AddJobAdSkill links a skill to a job ad owned by companyID and returns the
// ad's skills.
func (s *QualificationService) AddJobAdSkill(
	ctx context.Context,
	companyID, jobAdID, skillID uuid.UUID,
) ([]*domain.Skill, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return nil, err
	}
	if _, err := s.guards.EnsureSkill(ctx, skillID); err != nil {
		return nil, err
	}
	if err := s.skills.AddToJobAd(ctx, jobAdID, skillID); err != nil {
		return nil, s.linkError(ctx, err, "Skill", skillID, "Job Ad", jobAdID)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("skill added to job ad",
		slog.String("job_ad_id", jobAdID.String()),
		slog.String("skill_id", skillID.String()))
	return s.ListJobAdSkills(ctx, jobAdID)
}

// RemoveJobAdSkill unlinks a skill from a job ad owned by companyID.
func (s *QualificationService) RemoveJobAdSkill(ctx context.Context, companyID, jobAdID, skillID uuid.UUID) error {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return err
	}
	if err := s.skills.RemoveFromJobAd(ctx, jobAdID, skillID); err != nil {
		return s.linkError(ctx, err, "Skill", skillID, "Job Ad", jobAdID)
	}
	return nil
}

// ListJobAdSkills returns the skills of a job ad.
func (s *QualificationService) ListJobAdSkills(ctx context.Context, jobAdID uuid.UUID) ([]*domain.Skill, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, nil); err != nil {
		return nil, err
	}
	items, err := s.skills.ListForJobAd(ctx, jobAdID)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// AddJobApplicationSkill links a skill to a job application owned by
// professionalID and returns the application's skills.
func (s *QualificationService) AddJobApplicationSkill(
	ctx context.Context,
	professionalID, jobApplicationID, skillID uuid.UUID,
) ([]*domain.Skill, error) {
	if _, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID); err != nil {
		return nil, err
	}
	if _, err := s.guards.EnsureSkill(ctx, skillID); err != nil {
		return nil, err
	}
	if err := s.skills.AddToJobApplication(ctx, jobApplicationID, skillID); err != nil {
		return nil, s.linkError(ctx, err, "Skill", skillID, "Job Application", jobApplicationID)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("skill added to job application",
		slog.String("job_application_id", jobApplicationID.String()),
		slog.String("skill_id", skillID.String()))
	return s.ListJobApplicationSkills(ctx, jobApplicationID)
}

// RemoveJobApplicationSkill unlinks a skill from a job application owned by
// professionalID.
func (s *QualificationService) RemoveJobApplicationSkill(
	ctx context.Context,
	professionalID, jobApplicationID, skillID uuid.UUID,
) error {
	if _, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID); err != nil {
		return err
	}
	if err := s.skills.RemoveFromJobApplication(ctx, jobApplicationID, skillID); err != nil {
		return s.linkError(ctx, err, "Skill", skillID, "Job Application", jobApplicationID)
	}
	return nil
}

// ListJobApplicationSkills returns the skills of a job application.
func (s *QualificationService) ListJobApplicationSkills(
	ctx context.Context,
	jobApplicationID uuid.UUID,
) ([]*domain.Skill, error) {
	if _, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, nil); err != nil {
		return nil, err
	}
	items, err := s.skills.ListForJobApplication(ctx, jobApplicationID)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// CreateRequirement adds a requirement to the catalog of companyID.
func (s *QualificationService) CreateRequirement(
	ctx context.Context,
	companyID uuid.UUID,
	description string,
	level domain.SkillLevel,
) (*domain.Requirement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	r, err := domain.NewRequirement(companyID, description, level)
	if err != nil {
		return nil, err
	}
	if err := s.requirements.Create(ctx, r); err != nil {
		if errors.Is(err, store.ErrNameExists) {
			return nil, domain.Conflict("Requirement %s already exists", r.Description)
		}
		return nil, Translate(log, err, "")
	}

	log.Info("requirement created",
		slog.String("requirement_id", r.ID.String()),
		slog.String("company_id", companyID.String()))
	return r, nil
}

// ListCompanyRequirements returns the requirements of companyID.
func (s *QualificationService) ListCompanyRequirements(
	ctx context.Context,
	companyID uuid.UUID,
) ([]*domain.Requirement, error) {
	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	items, err := s.requirements.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// AttachRequirement attaches one of the company's requirements to one of its
// job ads and returns the ad's requirements.
func (s *QualificationService) AttachRequirement(
	ctx context.Context,
	companyID, jobAdID, requirementID uuid.UUID,
) ([]*domain.Requirement, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return nil, err
	}
	if _, err := s.ensureRequirement(ctx, requirementID, companyID); err != nil {
		return nil, err
	}
	if err := s.requirements.AttachToJobAd(ctx, jobAdID, requirementID); err != nil {
		return nil, s.linkError(ctx, err, "Requirement", requirementID, "Job Ad", jobAdID)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("requirement attached to job ad",
		slog.String("job_ad_id", jobAdID.String()),
		slog.String("requirement_id", requirementID.String()))
	return s.ListJobAdRequirements(ctx, jobAdID)
}

// DetachRequirement removes a requirement from a job ad owned by companyID.
func (s *QualificationService) DetachRequirement(ctx context.Context, companyID, jobAdID, requirementID uuid.UUID) error {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return err
	}
	if err := s.requirements.DetachFromJobAd(ctx, jobAdID, requirementID); err != nil {
		return s.linkError(ctx, err, "Requirement", requirementID, "Job Ad", jobAdID)
	}
	return nil
}

// ListJobAdRequirements returns the requirements attached to a job ad.
func (s *QualificationService) ListJobAdRequirements(
	ctx context.Context,
	jobAdID uuid.UUID,
) ([]*domain.Requirement, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, nil); err != nil {
		return nil, err
	}
	items, err := s.requirements.ListByJobAd(ctx, jobAdID)
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// ensureRequirement returns the requirement with id, which must belong to companyID.
func (s *QualificationService) ensureRequirement(
	ctx context.Context,
	id, companyID uuid.UUID,
) (*domain.Requirement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	r, err := s.requirements.GetByID(ctx, id)
	if err != nil {
		return nil, Translate(log, err, "Requirement with id "+id.String()+" not found")
	}
	if r.CompanyID != companyID {
		log.Warn("requirement ownership mismatch",
			slog.String("requirement_id", id.String()),
			slog.String("company_id", companyID.String()))
		return nil, domain.BadRequest("Requirement with id %s does not belong to company with id %s", id, companyID)
	}
	return r, nil
}

// linkError translates join table errors for item linked to owner.
func (s *QualificationService) linkError(
	ctx context.Context,
	err error,
	item string, itemID uuid.UUID,
	owner string, ownerID uuid.UUID,
) error {
	switch {
	case errors.Is(err, store.ErrLinkExists):
		return domain.Conflict("%s with id %s is already linked to %s with id %s", item, itemID, owner, ownerID)
	case errors.Is(err, store.ErrLinkNotFound):
		return domain.NotFound("%s with id %s is not linked to %s with id %s", item, itemID, owner, ownerID)
	}
	return Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
}
