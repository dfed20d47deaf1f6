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
)

const jobAdColumns = `id, company_id, category_id, city_id, title, description,
	min_salary, max_salary, status, created_at, updated_at`

// PostgresJobAdStore implements the store.JobAdStore interface
// using a PostgreSQL database as the storage backend.
type PostgresJobAdStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobAdStore creates a new PostgreSQL implementation of the JobAdStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresJobAdStore(db store.DBTX, logger *slog.Logger) *PostgresJobAdStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobAdStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_ad_store")),
	}
}

// Ensure PostgresJobAdStore implements store.JobAdStore interface
var _ store.JobAdStore = (*PostgresJobAdStore)(nil)

// Create implements store.JobAdStore.Create
// Returns store.ErrInvalidEntity if the company, category or city doesn't exist.
func (s *PostgresJobAdStore) Create(ctx context.Context, ad *domain.JobAd) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		log.Warn("job ad validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", ad.ID.String()))
		return err
	}

	query := `
		INSERT INTO job_ads (` + jobAdColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		ad.ID,
		ad.CompanyID,
		ad.CategoryID,
		ad.CityID,
		ad.Title,
		ad.Description,
		ad.Min,
		ad.Max,
		ad.Status,
		ad.CreatedAt,
		ad.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to create job ad",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", ad.ID.String()),
			slog.String("company_id", ad.CompanyID.String()))
		return MapError(err)
	}

	log.Info("job ad created successfully",
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("company_id", ad.CompanyID.String()))
	return nil
}

// GetByID implements store.JobAdStore.GetByID
func (s *PostgresJobAdStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobAd, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + jobAdColumns + ` FROM job_ads WHERE id = $1`
	ad, err := scanJobAd(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("job ad not found", slog.String("job_ad_id", id.String()))
			return nil, store.ErrJobAdNotFound
		}
		log.Error("failed to get job ad by ID",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", id.String()))
		return nil, err
	}
	return ad, nil
}

// List implements store.JobAdStore.List
func (s *PostgresJobAdStore) List(ctx context.Context, filter store.JobAdFilter) ([]*domain.JobAd, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w whereBuilder
	if filter.CompanyID != uuid.Nil {
		w.add("company_id = ?", filter.CompanyID)
	}
	if filter.CategoryID != uuid.Nil {
		w.add("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	query := `SELECT ` + jobAdColumns + ` FROM job_ads ` + w.clause() +
		` ORDER BY created_at DESC, id ` + w.page(filter.Page)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		log.Error("failed to list job ads", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	ads := []*domain.JobAd{}
	for rows.Next() {
		ad, err := scanJobAd(rows)
		if err != nil {
			log.Error("failed to scan job ad row", slog.String("error", err.Error()))
			return nil, err
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed job ads", slog.Int("count", len(ads)))
	return ads, nil
}

// UpdateStatus implements store.JobAdStore.UpdateStatus
func (s *PostgresJobAdStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobAdStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.NewValidationError("status", "is invalid", domain.ErrInvalidJobAdStatus)
	}

	query := `UPDATE job_ads SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update job ad status",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", id.String()),
			slog.String("status", string(status)))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrJobAdNotFound); err != nil {
		log.Debug("job ad not found for status update", slog.String("job_ad_id", id.String()))
		return err
	}

	log.Info("job ad status updated successfully",
		slog.String("job_ad_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Update implements store.JobAdStore.Update
func (s *PostgresJobAdStore) Update(ctx context.Context, ad *domain.JobAd) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		log.Warn("job ad validation failed during update",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", ad.ID.String()))
		return err
	}

	query := `
		UPDATE job_ads
		SET category_id = $1, city_id = $2, title = $3, description = $4,
			min_salary = $5, max_salary = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(ctx, query,
		ad.CategoryID,
		ad.CityID,
		ad.Title,
		ad.Description,
		ad.Min,
		ad.Max,
		ad.Status,
		ad.UpdatedAt,
		ad.ID,
	)
	if err != nil {
		log.Warn("failed to update job ad",
			slog.String("error", err.Error()),
			slog.String("job_ad_id", ad.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrJobAdNotFound); err != nil {
		log.Debug("job ad not found for update", slog.String("job_ad_id", ad.ID.String()))
		return err
	}

	log.Info("job ad updated successfully", slog.String("job_ad_id", ad.ID.String()))
	return nil
}

// WithTx implements store.JobAdStore.WithTx
func (s *PostgresJobAdStore) WithTx(tx *sql.Tx) store.JobAdStore {
	return &PostgresJobAdStore{db: tx, logger: s.logger}
}

func scanJobAd(row rowScanner) (*domain.JobAd, error) {
	var ad domain.JobAd
	var status string
	err := row.Scan(
		&ad.ID,
		&ad.CompanyID,
		&ad.CategoryID,
		&ad.CityID,
		&ad.Title,
		&ad.Description,
		&ad.Min,
		&ad.Max,
		&status,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ad.Status = domain.JobAdStatus(status)
	return &ad, nil
}
