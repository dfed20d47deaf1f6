package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// MatchFilter narrows a match listing. An empty Statuses slice matches every status.
type MatchFilter struct {
	Statuses []domain.MatchStatus
	Page     Page
}

// MatchStore defines the interface for match persistence.
// A match is identified by the pair (job ad, job application); at most one
// row exists per pair.
type MatchStore interface {
	// CreateIfNotExists inserts m unless a row for the pair already exists.
	// It returns true when the row was inserted. When it returns false the
	// caller should read the existing row with Get. Returns ErrInvalidEntity
	// when the job ad or job application does not exist.
	CreateIfNotExists(ctx context.Context, m *domain.Match) (bool, error)

	// Get returns ErrMatchNotFound if no match exists for the pair.
	Get(ctx context.Context, jobAdID, jobApplicationID uuid.UUID) (*domain.Match, error)

	// UpdateStatus moves the match from status from to status to.
	// Returns ErrMatchNotFound if no match exists for the pair and
	// ErrStatusChanged if the match no longer holds status from.
	UpdateStatus(ctx context.Context, jobAdID, jobApplicationID uuid.UUID, from, to domain.MatchStatus) error

	// ListByJobApplication returns matches for one job application.
	ListByJobApplication(ctx context.Context, jobApplicationID uuid.UUID, filter MatchFilter) ([]*domain.Match, error)

	// ListByJobAd returns matches for one job ad.
	ListByJobAd(ctx context.Context, jobAdID uuid.UUID, filter MatchFilter) ([]*domain.Match, error)

	// ListByCompany returns matches for every job ad the company owns.
	ListByCompany(ctx context.Context, companyID uuid.UUID, filter MatchFilter) ([]*domain.Match, error)

	// ListByProfessional returns matches for every job application the professional owns.
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, filter MatchFilter) ([]*domain.Match, error)

	// WithTx returns a new MatchStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MatchStore
}
