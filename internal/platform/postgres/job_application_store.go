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

const jobApplicationColumns = `id, professional_id, category_id, city_id, name, description,
	min_salary, max_salary, is_main, status, created_at, updated_at`

// PostgresJobApplicationStore implements the store.JobApplicationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresJobApplicationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobApplicationStore creates a new PostgreSQL implementation of the
// JobApplicationStore interface. If logger is nil, a default logger will be used.
func NewPostgresJobApplicationStore(db store.DBTX, logger *slog.Logger) *PostgresJobApplicationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobApplicationStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_application_store")),
	}
}

// Ensure PostgresJobApplicationStore implements store.JobApplicationStore interface
var _ store.JobApplicationStore = (*PostgresJobApplicationStore)(nil)

// Create implements store.JobApplicationStore.Create
func (s *PostgresJobApplicationStore) Create(ctx context.Context, app *domain.JobApplication) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := app.Validate(); err != nil {
		log.Warn("job application validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_application_id", app.ID.String()))
		return err
	}

	query := `
		INSERT INTO job_applications (` + jobApplicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		app.ID,
		app.ProfessionalID,
		app.CategoryID,
		app.CityID,
		app.Name,
		app.Description,
		app.Min,
		app.Max,
		app.IsMain,
		app.Status,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to create job application",
			slog.String("error", err.Error()),
			slog.String("job_application_id", app.ID.String()),
			slog.String("professional_id", app.ProfessionalID.String()))
		return MapError(err)
	}

	log.Info("job application created successfully",
		slog.String("job_application_id", app.ID.String()),
		slog.String("professional_id", app.ProfessionalID.String()))
	return nil
}

// GetByID implements store.JobApplicationStore.GetByID
func (s *PostgresJobApplicationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + jobApplicationColumns + ` FROM job_applications WHERE id = $1`
	app, err := scanJobApplication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("job application not found", slog.String("job_application_id", id.String()))
			return nil, store.ErrJobApplicationNotFound
		}
		log.Error("failed to get job application by ID",
			slog.String("error", err.Error()),
			slog.String("job_application_id", id.String()))
		return nil, err
	}
	return app, nil
}

// List implements store.JobApplicationStore.List
func (s *PostgresJobApplicationStore) List(
	ctx context.Context,
	filter store.JobApplicationFilter,
) ([]*domain.JobApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w whereBuilder
	if filter.ProfessionalID != uuid.Nil {
		w.add("professional_id = ?", filter.ProfessionalID)
	}
	if filter.CategoryID != uuid.Nil {
		w.add("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	query := `SELECT ` + jobApplicationColumns + ` FROM job_applications ` + w.clause() +
		` ORDER BY created_at DESC, id ` + w.page(filter.Page)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		log.Error("failed to list job applications", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	apps := []*domain.JobApplication{}
	for rows.Next() {
		app, err := scanJobApplication(rows)
		if err != nil {
			log.Error("failed to scan job application row", slog.String("error", err.Error()))
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed job applications", slog.Int("count", len(apps)))
	return apps, nil
}

// UpdateStatus implements store.JobApplicationStore.UpdateStatus
func (s *PostgresJobApplicationStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobApplicationStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.NewValidationError("status", "is invalid", domain.ErrInvalidJobAppStatus)
	}

	query := `UPDATE job_applications SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update job application status",
			slog.String("error", err.Error()),
			slog.String("job_application_id", id.String()),
			slog.String("status", string(status)))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrJobApplicationNotFound); err != nil {
		log.Debug("job application not found for status update",
			slog.String("job_application_id", id.String()))
		return err
	}

	log.Info("job application status updated successfully",
		slog.String("job_application_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// WithTx implements store.JobApplicationStore.WithTx
func (s *PostgresJobApplicationStore) WithTx(tx *sql.Tx) store.JobApplicationStore {
	return &PostgresJobApplicationStore{db: tx, logger: s.logger}
}

func scanJobApplication(row rowScanner) (*domain.JobApplication, error) {
	var app domain.JobApplication
	var status string
	err := row.Scan(
		&app.ID,
		&app.ProfessionalID,
		&app.CategoryID,
		&app.CityID,
		&app.Name,
		&app.Description,
		&app.Min,
		&app.Max,
		&app.IsMain,
		&status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.Status = domain.JobApplicationStatus(status)
	return &app, nil
}
