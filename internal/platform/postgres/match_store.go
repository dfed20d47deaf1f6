package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

const matchColumns = `m.job_ad_id, m.job_application_id, m.status, m.created_at, m.updated_at`

// PostgresMatchStore implements the store.MatchStore interface
// using a PostgreSQL database as the storage backend.
//
// The primary key on (job_ad_id, job_application_id) guarantees a single row
// per pair; inserts use ON CONFLICT DO NOTHING and status changes are
// compare-and-set updates.
type PostgresMatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMatchStore creates a new PostgreSQL implementation of the MatchStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMatchStore(db store.DBTX, logger *slog.Logger) *PostgresMatchStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "match_store")),
	}
}

// Ensure PostgresMatchStore implements store.MatchStore interface
var _ store.MatchStore = (*PostgresMatchStore)(nil)

// CreateIfNotExists implements store.MatchStore.CreateIfNotExists
func (s *PostgresMatchStore) CreateIfNotExists(ctx context.Context, m *domain.Match) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", m.JobAdID.String()),
		slog.String("job_application_id", m.JobApplicationID.String()))

	if err := m.Validate(); err != nil {
		log.Warn("match validation failed during create", slog.String("error", err.Error()))
		return false, err
	}

	query := `
		INSERT INTO matches (job_ad_id, job_application_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_ad_id, job_application_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		m.JobAdID,
		m.JobApplicationID,
		string(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to create match", slog.String("error", err.Error()))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return false, err
	}
	if rowsAffected == 0 {
		log.Debug("match already exists")
		return false, nil
	}

	log.Info("match request created", slog.String("status", string(m.Status)))
	return true, nil
}

// Get implements store.MatchStore.Get
func (s *PostgresMatchStore) Get(ctx context.Context, jobAdID, jobApplicationID uuid.UUID) (*domain.Match, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + matchColumns + `
		FROM matches m
		WHERE m.job_ad_id = $1 AND m.job_application_id = $2
	`
	m, err := scanMatch(s.db.QueryRowContext(ctx, query, jobAdID, jobApplicationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("match not found",
				slog.String("job_ad_id", jobAdID.String()),
				slog.String("job_application_id", jobApplicationID.String()))
			return nil, store.ErrMatchNotFound
		}
		log.Error("failed to get match",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", jobAdID.String()),
			slog.String("job_application_id", jobApplicationID.String()))
		return nil, err
	}
	return m, nil
}

// UpdateStatus implements store.MatchStore.UpdateStatus
func (s *PostgresMatchStore) UpdateStatus(
	ctx context.Context,
	jobAdID, jobApplicationID uuid.UUID,
	from, to domain.MatchStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", jobAdID.String()),
		slog.String("job_application_id", jobApplicationID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	if !to.IsValid() {
		return domain.NewValidationError("status", "is invalid", domain.ErrInvalidMatchStatus)
	}

	query := `
		UPDATE matches
		SET status = $1, updated_at = $2
		WHERE job_ad_id = $3 AND job_application_id = $4 AND status = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		string(to), time.Now().UTC(), jobAdID, jobApplicationID, string(from))
	if err != nil {
		log.Error("failed to update match status", slog.String("error", err.Error()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return err
	}
	if rowsAffected > 0 {
		log.Info("match status updated successfully")
		return nil
	}

	// Nothing matched: either the row is gone or another writer moved it first.
	exists, err := existsQuery(ctx, s.db,
		`SELECT EXISTS(SELECT 1 FROM matches WHERE job_ad_id = $1 AND job_application_id = $2)`,
		jobAdID, jobApplicationID)
	if err != nil {
		log.Error("failed to check match existence", slog.String("error", err.Error()))
		return err
	}
	if !exists {
		log.Debug("match not found for status update")
		return store.ErrMatchNotFound
	}

	log.Warn("match status changed concurrently")
	return store.ErrStatusChanged
}

// ListByJobApplication implements store.MatchStore.ListByJobApplication
func (s *PostgresMatchStore) ListByJobApplication(
	ctx context.Context,
	jobApplicationID uuid.UUID,
	filter store.MatchFilter,
) ([]*domain.Match, error) {
	var w whereBuilder
	w.add("m.job_application_id = ?", jobApplicationID)
	return s.list(ctx, "FROM matches m", &w, filter)
}

// ListByJobAd implements store.MatchStore.ListByJobAd
func (s *PostgresMatchStore) ListByJobAd(
	ctx context.Context,
	jobAdID uuid.UUID,
	filter store.MatchFilter,
) ([]*domain.Match, error) {
	var w whereBuilder
	w.add("m.job_ad_id = ?", jobAdID)
	return s.list(ctx, "FROM matches m", &w, filter)
}

// ListByCompany implements store.MatchStore.ListByCompany
func (s *PostgresMatchStore) ListByCompany(
	ctx context.Context,
	companyID uuid.UUID,
	filter store.MatchFilter,
) ([]*domain.Match, error) {
	var w whereBuilder
	w.add("a.company_id = ?", companyID)
	return s.list(ctx, "FROM matches m JOIN job_ads a ON a.id = m.job_ad_id", &w, filter)
}

// ListByProfessional implements store.MatchStore.ListByProfessional
func (s *PostgresMatchStore) ListByProfessional(
	ctx context.Context,
	professionalID uuid.UUID,
	filter store.MatchFilter,
) ([]*domain.Match, error) {
	var w whereBuilder
	w.add("j.professional_id = ?", professionalID)
	return s.list(ctx, "FROM matches m JOIN job_applications j ON j.id = m.job_application_id", &w, filter)
}

func (s *PostgresMatchStore) list(
	ctx context.Context,
	from string,
	w *whereBuilder,
	filter store.MatchFilter,
) ([]*domain.Match, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	w.addIn("m.status", lo.Map(filter.Statuses, func(st domain.MatchStatus, _ int) any {
		return string(st)
	}))
	query := `SELECT ` + matchColumns + ` ` + from + ` ` + w.clause() +
		` ORDER BY m.created_at DESC, m.job_ad_id, m.job_application_id ` + w.page(filter.Page)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		log.Error("failed to list matches", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	matches := []*domain.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("failed to scan match row", slog.String("error", err.Error()))
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed matches", slog.Int("count", len(matches)))
	return matches, nil
}

// WithTx implements store.MatchStore.WithTx
func (s *PostgresMatchStore) WithTx(tx *sql.Tx) store.MatchStore {
	return &PostgresMatchStore{db: tx, logger: s.logger}
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var m domain.Match
	var status string
	if err := row.Scan(&m.JobAdID, &m.JobApplicationID, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = domain.MatchStatus(status)
	if !m.Status.IsValid() {
		return nil, domain.ErrInvalidMatchStatus
	}
	return &m, nil
}
