package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

const professionalColumns = `id, username, password_hash, email, first_name, last_name,
	description, city_id, status, created_at, updated_at`

// PostgresProfessionalStore implements the store.ProfessionalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfessionalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfessionalStore creates a new PostgreSQL implementation of the ProfessionalStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfessionalStore(db store.DBTX, logger *slog.Logger) *PostgresProfessionalStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfessionalStore{
		db:     db,
		logger: logger.With(slog.String("component", "professional_store")),
	}
}

// Ensure PostgresProfessionalStore implements store.ProfessionalStore interface
var _ store.ProfessionalStore = (*PostgresProfessionalStore)(nil)

// Create implements store.ProfessionalStore.Create
func (s *PostgresProfessionalStore) Create(ctx context.Context, p *domain.Professional) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("professional validation failed during create",
			slog.String("error", err.Error()),
			slog.String("professional_id", p.ID.String()))
		return err
	}

	query := `
		INSERT INTO professionals (` + professionalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Username,
		p.PasswordHash,
		p.Email,
		p.FirstName,
		p.LastName,
		p.Description,
		p.CityID,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to create professional",
			slog.String("error", err.Error()),
			slog.String("professional_id", p.ID.String()))
		return mapped
	}

	log.Info("professional created successfully",
		slog.String("professional_id", p.ID.String()))
	return nil
}

// GetByID implements store.ProfessionalStore.GetByID
func (s *PostgresProfessionalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE id = $1`
	return s.getOne(ctx, query, id, slog.String("professional_id", id.String()))
}

// GetByUsername implements store.ProfessionalStore.GetByUsername
func (s *PostgresProfessionalStore) GetByUsername(ctx context.Context, username string) (*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE username = $1`
	return s.getOne(ctx, query, username, slog.String("username", username))
}

func (s *PostgresProfessionalStore) getOne(
	ctx context.Context,
	query string,
	arg any,
	attr slog.Attr,
) (*domain.Professional, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanProfessional(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("professional not found", attr)
			return nil, store.ErrProfessionalNotFound
		}
		log.Error("failed to get professional",
			slog.String("error", err.Error()), attr)
		return nil, err
	}
	return p, nil
}

// EmailExists implements store.ProfessionalStore.EmailExists
func (s *PostgresProfessionalStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return existsQuery(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM professionals WHERE email = $1)`, email)
}

// List implements store.ProfessionalStore.List
func (s *PostgresProfessionalStore) List(ctx context.Context, page store.Page) ([]*domain.Professional, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	query := `
		SELECT ` + professionalColumns + `
		FROM professionals
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list professionals", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	professionals := []*domain.Professional{}
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			log.Error("failed to scan professional row", slog.String("error", err.Error()))
			return nil, err
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return professionals, nil
}

// Update implements store.ProfessionalStore.Update
func (s *PostgresProfessionalStore) Update(ctx context.Context, p *domain.Professional) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("professional validation failed during update",
			slog.String("error", err.Error()),
			slog.String("professional_id", p.ID.String()))
		return err
	}

	query := `
		UPDATE professionals
		SET first_name = $1, last_name = $2, description = $3, city_id = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		p.FirstName,
		p.LastName,
		p.Description,
		p.CityID,
		p.Status,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		log.Warn("failed to update professional",
			slog.String("error", err.Error()),
			slog.String("professional_id", p.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProfessionalNotFound); err != nil {
		log.Debug("professional not found for update", slog.String("professional_id", p.ID.String()))
		return err
	}

	log.Info("professional updated successfully", slog.String("professional_id", p.ID.String()))
	return nil
}

// WithTx implements store.ProfessionalStore.WithTx
func (s *PostgresProfessionalStore) WithTx(tx *sql.Tx) store.ProfessionalStore {
	return &PostgresProfessionalStore{db: tx, logger: s.logger}
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var p domain.Professional
	var status string
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.PasswordHash,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&p.Description,
		&p.CityID,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProfessionalStatus(status)
	return &p, nil
}
