package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// JobSkillStore links catalog skills to job ads and job applications.
// Add methods return ErrLinkExists when the skill is already linked and
// ErrInvalidEntity when the owner or the skill does not exist. Remove methods
// return ErrLinkNotFound when the skill is not linked.
type JobSkillStore interface {
	AddToJobAd(ctx context.Context, jobAdID, skillID uuid.UUID) error
	RemoveFromJobAd(ctx context.Context, jobAdID, skillID uuid.UUID) error

	// ListForJobAd returns the skills of a job ad ordered by name.
	ListForJobAd(ctx context.Context, jobAdID uuid.UUID) ([]*domain.Skill, error)

	AddToJobApplication(ctx context.Context, jobApplicationID, skillID uuid.UUID) error
	RemoveFromJobApplication(ctx context.Context, jobApplicationID, skillID uuid.UUID) error

	// ListForJobApplication returns the skills of a job application ordered by name.
	ListForJobApplication(ctx context.Context, jobApplicationID uuid.UUID) ([]*domain.Skill, error)
}

// RequirementStore defines the interface for company requirements and their
// attachment to job ads.
type RequirementStore interface {
	// Create saves a new requirement. Returns ErrNameExists if the company
	// already has a requirement with that description.
	Create(ctx context.Context, r *domain.Requirement) error

	// GetByID returns ErrRequirementNotFound if the requirement does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Requirement, error)

	// ListByCompany returns the requirements of a company ordered by description.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.Requirement, error)

	// AttachToJobAd links a requirement to a job ad. Returns ErrLinkExists
	// when it is already attached.
	AttachToJobAd(ctx context.Context, jobAdID, requirementID uuid.UUID) error

	// DetachFromJobAd returns ErrLinkNotFound when the requirement is not attached.
	DetachFromJobAd(ctx context.Context, jobAdID, requirementID uuid.UUID) error

	// ListByJobAd returns the requirements attached to a job ad ordered by description.
	ListByJobAd(ctx context.Context, jobAdID uuid.UUID) ([]*domain.Requirement, error)
}
