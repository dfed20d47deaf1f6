package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// JobAdFilter narrows a job ad listing. Zero values do not filter.
type JobAdFilter struct {
	CompanyID  uuid.UUID
	CategoryID uuid.UUID
	Status     domain.JobAdStatus
	Page       Page
}

// JobApplicationFilter narrows a job application listing. Zero values do not filter.
type JobApplicationFilter struct {
	ProfessionalID uuid.UUID
	CategoryID     uuid.UUID
	Status         domain.JobApplicationStatus
	Page           Page
}

// JobAdStore defines the interface for job ad persistence.
type JobAdStore interface {
	// Create saves a new job ad. Returns ErrInvalidEntity if a referenced
	// company, category or city does not exist.
	Create(ctx context.Context, ad *domain.JobAd) error

	// GetByID returns ErrJobAdNotFound if the job ad does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobAd, error)

	// List returns job ads matching filter, newest first.
	List(ctx context.Context, filter JobAdFilter) ([]*domain.JobAd, error)

	// UpdateStatus sets the status of a job ad.
	// Returns ErrJobAdNotFound if the job ad does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobAdStatus) error

	// Update saves the editable fields of ad: category, city, title,
	// description, salary range and status. Returns ErrJobAdNotFound if the
	// job ad does not exist and ErrInvalidEntity for a missing category or city.
	Update(ctx context.Context, ad *domain.JobAd) error

	// WithTx returns a new JobAdStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) JobAdStore
}

// JobApplicationStore defines the interface for job application persistence.
type JobApplicationStore interface {
	// Create saves a new job application. Returns ErrInvalidEntity if a
	// referenced professional, category or city does not exist.
	Create(ctx context.Context, app *domain.JobApplication) error

	// GetByID returns ErrJobApplicationNotFound if the application does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)

	// List returns job applications matching filter, newest first.
	List(ctx context.Context, filter JobApplicationFilter) ([]*domain.JobApplication, error)

	// UpdateStatus sets the status of a job application.
	// Returns ErrJobApplicationNotFound if the application does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobApplicationStatus) error

	// WithTx returns a new JobApplicationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) JobApplicationStore
}
