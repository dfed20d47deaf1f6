package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// ProfessionalStore defines the interface for professional data persistence.
type ProfessionalStore interface {
	// Create saves a new professional.
	// Returns ErrUsernameExists or ErrEmailExists on unique violations and
	// ErrInvalidEntity when the city does not exist.
	Create(ctx context.Context, p *domain.Professional) error

	// GetByID returns ErrProfessionalNotFound if the professional does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error)

	// GetByUsername returns ErrProfessionalNotFound if no professional owns username.
	GetByUsername(ctx context.Context, username string) (*domain.Professional, error)

	// EmailExists reports whether any professional uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// List returns professionals ordered by creation time, newest first.
	List(ctx context.Context, page Page) ([]*domain.Professional, error)

	// Update saves the profile of p: names, description, city and status.
	// Returns ErrProfessionalNotFound if the professional does not exist and
	// ErrInvalidEntity when the city does not exist.
	Update(ctx context.Context, p *domain.Professional) error

	// WithTx returns a new ProfessionalStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProfessionalStore
}

// CompanyStore defines the interface for company data persistence.
type CompanyStore interface {
	// Create saves a new company.
	// Returns ErrUsernameExists, ErrEmailExists or ErrPhoneExists on unique violations.
	Create(ctx context.Context, c *domain.Company) error

	// GetByID returns ErrCompanyNotFound if the company does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)

	// GetByUsername returns ErrCompanyNotFound if no company owns username.
	GetByUsername(ctx context.Context, username string) (*domain.Company, error)

	// EmailExists reports whether any company uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// List returns companies ordered by creation time, newest first.
	List(ctx context.Context, page Page) ([]*domain.Company, error)

	// IncrementSuccessfulMatches adds one to the company's successful match counter.
	// Returns ErrCompanyNotFound if the company does not exist.
	IncrementSuccessfulMatches(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CompanyStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CompanyStore
}
