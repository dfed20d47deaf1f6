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

// skillLinkTable names a join table between an owner and skills.
type skillLinkTable struct {
	name        string
	ownerColumn string
}

var (
	jobAdSkills          = skillLinkTable{name: "job_ad_skills", ownerColumn: "job_ad_id"}
	jobApplicationSkills = skillLinkTable{name: "job_application_skills", ownerColumn: "job_application_id"}
)

// PostgresJobSkillStore implements the store.JobSkillStore interface.
type PostgresJobSkillStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobSkillStore creates a new PostgreSQL implementation of the JobSkillStore interface.
func NewPostgresJobSkillStore(db store.DBTX, logger *slog.Logger) *PostgresJobSkillStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobSkillStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_skill_store")),
	}
}

var _ store.JobSkillStore = (*PostgresJobSkillStore)(nil)

// AddToJobAd implements store.JobSkillStore.AddToJobAd
func (s *PostgresJobSkillStore) AddToJobAd(ctx context.Context, jobAdID, skillID uuid.UUID) error {
	return s.add(ctx, jobAdSkills, jobAdID, skillID)
}

// RemoveFromJobAd implements store.JobSkillStore.RemoveFromJobAd
func (s *PostgresJobSkillStore) RemoveFromJobAd(ctx context.Context, jobAdID, skillID uuid.UUID) error {
	return s.remove(ctx, jobAdSkills, jobAdID, skillID)
}

// ListForJobAd implements store.JobSkillStore.ListForJobAd
func (s *PostgresJobSkillStore) ListForJobAd(ctx context.Context, jobAdID uuid.UUID) ([]*domain.Skill, error) {
	return s.list(ctx, jobAdSkills, jobAdID)
}

// AddToJobApplication implements store.JobSkillStore.AddToJobApplication
func (s *PostgresJobSkillStore) AddToJobApplication(ctx context.Context, jobApplicationID, skillID uuid.UUID) error {
	return s.add(ctx, jobApplicationSkills, jobApplicationID, skillID)
}

// RemoveFromJobApplication implements store.JobSkillStore.RemoveFromJobApplication
func (s *PostgresJobSkillStore) RemoveFromJobApplication(
	ctx context.Context,
	jobApplicationID, skillID uuid.UUID,
) error {
	return s.remove(ctx, jobApplicationSkills, jobApplicationID, skillID)
}

// ListForJobApplication implements store.JobSkillStore.ListForJobApplication
func (s *PostgresJobSkillStore) ListForJobApplication(
	ctx context.Context,
	jobApplicationID uuid.UUID,
) ([]*domain.Skill, error) {
	return s.list(ctx, jobApplicationSkills, jobApplicationID)
}

func (s *PostgresJobSkillStore) add(ctx context.Context, t skillLinkTable, ownerID, skillID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String(t.ownerColumn, ownerID.String()),
		slog.String("skill_id", skillID.String()))

	query := `INSERT INTO ` + t.name + ` (` + t.ownerColumn + `, skill_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	result, err := s.db.ExecContext(ctx, query, ownerID, skillID)
	if err != nil {
		log.Warn("failed to link skill", slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrLinkExists); err != nil {
		log.Debug("skill already linked")
		return err
	}

	log.Info("skill linked", slog.String("table", t.name))
	return nil
}

func (s *PostgresJobSkillStore) remove(ctx context.Context, t skillLinkTable, ownerID, skillID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String(t.ownerColumn, ownerID.String()),
		slog.String("skill_id", skillID.String()))

	query := `DELETE FROM ` + t.name + ` WHERE ` + t.ownerColumn + ` = $1 AND skill_id = $2`
	result, err := s.db.ExecContext(ctx, query, ownerID, skillID)
	if err != nil {
		log.Error("failed to unlink skill", slog.String("error", err.Error()))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrLinkNotFound); err != nil {
		log.Debug("skill not linked")
		return err
	}

	log.Info("skill unlinked", slog.String("table", t.name))
	return nil
}

func (s *PostgresJobSkillStore) list(ctx context.Context, t skillLinkTable, ownerID uuid.UUID) ([]*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT s.id, s.name, s.category_id
		FROM skills s
		JOIN ` + t.name + ` l ON l.skill_id = s.id
		WHERE l.` + t.ownerColumn + ` = $1
		ORDER BY s.name
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list linked skills",
			slog.String("error", err.Error()),
			slog.String(t.ownerColumn, ownerID.String()))
		return nil, err
	}
	defer closeRows(log, rows)

	skills := []*domain.Skill{}
	for rows.Next() {
		var sk domain.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.CategoryID); err != nil {
			log.Error("failed to scan skill row", slog.String("error", err.Error()))
			return nil, err
		}
		skills = append(skills, &sk)
	}
	return skills, rows.Err()
}

const requirementColumns = `id, company_id, description, skill_level, created_at, updated_at`

// PostgresRequirementStore implements the store.RequirementStore interface.
type PostgresRequirementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRequirementStore creates a new PostgreSQL implementation of the RequirementStore interface.
func NewPostgresRequirementStore(db store.DBTX, logger *slog.Logger) *PostgresRequirementStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRequirementStore{
		db:     db,
		logger: logger.With(slog.String("component", "requirement_store")),
	}
}

var _ store.RequirementStore = (*PostgresRequirementStore)(nil)

// Create implements store.RequirementStore.Create
func (s *PostgresRequirementStore) Create(ctx context.Context, r *domain.Requirement) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		log.Warn("requirement validation failed during create",
			slog.String("error", err.Error()),
			slog.String("requirement_id", r.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_requirements (`+requirementColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.CompanyID, r.Description, r.SkillLevel, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		log.Warn("failed to create requirement",
			slog.String("error", err.Error()),
			slog.String("company_id", r.CompanyID.String()))
		return MapError(err)
	}

	log.Info("requirement created",
		slog.String("requirement_id", r.ID.String()),
		slog.String("company_id", r.CompanyID.String()))
	return nil
}

// GetByID implements store.RequirementStore.GetByID
func (s *PostgresRequirementStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	r, err := scanRequirement(s.db.QueryRowContext(ctx,
		`SELECT `+requirementColumns+` FROM job_requirements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("requirement not found", slog.String("requirement_id", id.String()))
			return nil, store.ErrRequirementNotFound
		}
		log.Error("failed to get requirement",
			slog.String("error", err.Error()),
			slog.String("requirement_id", id.String()))
		return nil, err
	}
	return r, nil
}

// ListByCompany implements store.RequirementStore.ListByCompany
func (s *PostgresRequirementStore) ListByCompany(
	ctx context.Context,
	companyID uuid.UUID,
) ([]*domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM job_requirements
		WHERE company_id = $1 ORDER BY description`
	return s.query(ctx, query, companyID)
}

// AttachToJobAd implements store.RequirementStore.AttachToJobAd
func (s *PostgresRequirementStore) AttachToJobAd(ctx context.Context, jobAdID, requirementID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", jobAdID.String()),
		slog.String("requirement_id", requirementID.String()))

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO job_ad_requirements (job_ad_id, requirement_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jobAdID, requirementID)
	if err != nil {
		log.Warn("failed to attach requirement", slog.String("error", err.Error()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrLinkExists); err != nil {
		log.Debug("requirement already attached")
		return err
	}

	log.Info("requirement attached to job ad")
	return nil
}

// DetachFromJobAd implements store.RequirementStore.DetachFromJobAd
func (s *PostgresRequirementStore) DetachFromJobAd(ctx context.Context, jobAdID, requirementID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", jobAdID.String()),
		slog.String("requirement_id", requirementID.String()))

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM job_ad_requirements WHERE job_ad_id = $1 AND requirement_id = $2`,
		jobAdID, requirementID)
	if err != nil {
		log.Error("failed to detach requirement", slog.String("error", err.Error()))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrLinkNotFound); err != nil {
		log.Debug("requirement not attached")
		return err
	}

	log.Info("requirement detached from job ad")
	return nil
}

// ListByJobAd implements store.RequirementStore.ListByJobAd
func (s *PostgresRequirementStore) ListByJobAd(ctx context.Context, jobAdID uuid.UUID) ([]*domain.Requirement, error) {
	query := `
		SELECT r.id, r.company_id, r.description, r.skill_level, r.created_at, r.updated_at
		FROM job_requirements r
		JOIN job_ad_requirements l ON l.requirement_id = r.id
		WHERE l.job_ad_id = $1
		ORDER BY r.description
	`
	return s.query(ctx, query, jobAdID)
}

func (s *PostgresRequirementStore) query(ctx context.Context, query string, arg any) ([]*domain.Requirement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list requirements", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(log, rows)

	requirements := []*domain.Requirement{}
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			log.Error("failed to scan requirement row", slog.String("error", err.Error()))
			return nil, err
		}
		requirements = append(requirements, r)
	}
	return requirements, rows.Err()
}

func scanRequirement(row rowScanner) (*domain.Requirement, error) {
	var r domain.Requirement
	var level string
	if err := row.Scan(&r.ID, &r.CompanyID, &r.Description, &level, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.SkillLevel = domain.SkillLevel(level)
	return &r, nil
}
