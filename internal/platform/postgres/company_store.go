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

const companyColumns = `id, username, password_hash, name, description, email,
	phone_number, city_id, successful_matches_count, created_at, updated_at`

// PostgresCompanyStore implements the store.CompanyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCompanyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCompanyStore creates a new PostgreSQL implementation of the CompanyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCompanyStore(db store.DBTX, logger *slog.Logger) *PostgresCompanyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCompanyStore{
		db:     db,
		logger: logger.With(slog.String("component", "company_store")),
	}
}

// Ensure PostgresCompanyStore implements store.CompanyStore interface
var _ store.CompanyStore = (*PostgresCompanyStore)(nil)

// Create implements store.CompanyStore.Create
func (s *PostgresCompanyStore) Create(ctx context.Context, c *domain.Company) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("company validation failed during create",
			slog.String("error", err.Error()),
			slog.String("company_id", c.ID.String()))
		return err
	}

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Username,
		c.PasswordHash,
		c.Name,
		c.Description,
		c.Email,
		c.PhoneNumber,
		c.CityID,
		c.SuccessfulMatchesCount,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to create company",
			slog.String("error", err.Error()),
			slog.String("company_id", c.ID.String()))
		return MapError(err)
	}

	log.Info("company created successfully",
		slog.String("company_id", c.ID.String()))
	return nil
}

// GetByID implements store.CompanyStore.GetByID
func (s *PostgresCompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return s.getOne(ctx, query, id, slog.String("company_id", id.String()))
}

// GetByUsername implements store.CompanyStore.GetByUsername
func (s *PostgresCompanyStore) GetByUsername(ctx context.Context, username string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE username = $1`
	return s.getOne(ctx, query, username, slog.String("username", username))
}

func (s *PostgresCompanyStore) getOne(
	ctx context.Context,
	query string,
	arg any,
	attr slog.Attr,
) (*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := scanCompany(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("company not found", attr)
			return nil, store.ErrCompanyNotFound
		}
		log.Error("failed to get company",
			slog.String("error", err.Error()), attr)
		return nil, err
	}
	return c, nil
}

// EmailExists implements store.CompanyStore.EmailExists
func (s *PostgresCompanyStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return existsQuery(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM companies WHERE email = $1)`, email)
}

// List implements store.CompanyStore.List
func (s *PostgresCompanyStore) List(ctx context.Context, page store.Page) ([]*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list companies", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	companies := []*domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			log.Error("failed to scan company row", slog.String("error", err.Error()))
			return nil, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return companies, nil
}

// IncrementSuccessfulMatches implements store.CompanyStore.IncrementSuccessfulMatches
func (s *PostgresCompanyStore) IncrementSuccessfulMatches(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE companies
		SET successful_matches_count = successful_matches_count + 1, updated_at = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to increment successful matches",
			slog.String("error", err.Error()),
			slog.String("company_id", id.String()))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrCompanyNotFound); err != nil {
		log.Debug("company not found for match counter update",
			slog.String("company_id", id.String()))
		return err
	}

	log.Debug("successful matches incremented", slog.String("company_id", id.String()))
	return nil
}

// WithTx implements store.CompanyStore.WithTx
func (s *PostgresCompanyStore) WithTx(tx *sql.Tx) store.CompanyStore {
	return &PostgresCompanyStore{db: tx, logger: s.logger}
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID,
		&c.Username,
		&c.PasswordHash,
		&c.Name,
		&c.Description,
		&c.Email,
		&c.PhoneNumber,
		&c.CityID,
		&c.SuccessfulMatchesCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
