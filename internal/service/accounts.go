package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// RegisterProfessionalInput is the data needed to register a professional.
type RegisterProfessionalInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	Description string
	CityID      uuid.UUID
}

// RegisterCompanyInput is the data needed to register a company.
type RegisterCompanyInput struct {
	Username    string
	Password    string
	Name        string
	Description string
	Email       string
	PhoneNumber string
	CityID      uuid.UUID
}

// ProfessionalUpdate holds the profile fields to change. Nil fields keep
// their value.
type ProfessionalUpdate struct {
	FirstName   *string
	LastName    *string
	Description *string
	CityID      *uuid.UUID
	Status      *domain.ProfessionalStatus
}

// AccountService registers and looks up professionals and companies.
// Usernames are unique across both account kinds because login resolves a
// username without knowing its role.
type AccountService struct {
	professionals store.ProfessionalStore
	companies     store.CompanyStore
	guards        *Guards
	hasher        auth.PasswordHasher
	logger        *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	professionals store.ProfessionalStore,
	companies store.CompanyStore,
	guards *Guards,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		professionals: professionals,
		companies:     companies,
		guards:        guards,
		hasher:        hasher,
		logger:        logger.With(slog.String("component", "account_service")),
	}
}

// RegisterProfessional creates a professional account.
func (s *AccountService) RegisterProfessional(
	ctx context.Context,
	in RegisterProfessionalInput,
) (*domain.Professional, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guards.EnsureCity(ctx, in.CityID); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, in.Username); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	p, err := domain.NewProfessional(in.Username, hash, in.Email, in.FirstName, in.LastName, in.Description, in.CityID)
	if err != nil {
		return nil, err
	}
	if err := s.professionals.Create(ctx, p); err != nil {
		return nil, s.registrationError(log, err, "Professional", p.Username, p.Email, "")
	}

	log.Info("professional registered", slog.String("professional_id", p.ID.String()))
	return p, nil
}

// RegisterCompany creates a company account.
func (s *AccountService) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.guards.EnsureCity(ctx, in.CityID); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, in.Username); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	c, err := domain.NewCompany(in.Username, hash, in.Name, in.Description, in.Email, in.PhoneNumber, in.CityID)
	if err != nil {
		return nil, err
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, s.registrationError(log, err, "Company", c.Username, c.Email, c.PhoneNumber)
	}

	log.Info("company registered", slog.String("company_id", c.ID.String()))
	return c, nil
}

// GetProfessional returns the professional with id.
func (s *AccountService) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return s.guards.EnsureProfessional(ctx, id)
}

// UpdateProfessional applies in to the profile of the professional with id.
func (s *AccountService) UpdateProfessional(
	ctx context.Context,
	id uuid.UUID,
	in ProfessionalUpdate,
) (*domain.Professional, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := s.guards.EnsureProfessional(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CityID != nil {
		if _, err := s.guards.EnsureCity(ctx, *in.CityID); err != nil {
			return nil, err
		}
		p.CityID = *in.CityID
	}
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.professionals.Update(ctx, p); err != nil {
		return nil, Translate(log, err, "Professional with id "+id.String()+" not found")
	}

	log.Info("professional profile updated",
		slog.String("professional_id", id.String()),
		slog.String("status", string(p.Status)))
	return p, nil
}

// GetCompany returns the company with id.
func (s *AccountService) GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.guards.EnsureCompany(ctx, id)
}

// ListProfessionals returns one page of professionals.
func (s *AccountService) ListProfessionals(ctx context.Context, page store.Page) ([]*domain.Professional, error) {
	items, err := s.professionals.List(ctx, page.Normalize())
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// ListCompanies returns one page of companies.
func (s *AccountService) ListCompanies(ctx context.Context, page store.Page) ([]*domain.Company, error) {
	items, err := s.companies.List(ctx, page.Normalize())
	if err != nil {
		return nil, Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	return items, nil
}

// ensureUsernameFree checks both namespaces. Two concurrent registrations of
// one username as different kinds can still both pass; login then resolves
// the professional.
func (s *AccountService) ensureUsernameFree(ctx context.Context, username string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.professionals.GetByUsername(ctx, username)
	if err == nil {
		return domain.Conflict("User with username %s already exists", username)
	}
	if !store.IsNotFoundError(err) {
		return Translate(log, err, "")
	}

	_, err = s.companies.GetByUsername(ctx, username)
	if err == nil {
		return domain.Conflict("User with username %s already exists", username)
	}
	if !store.IsNotFoundError(err) {
		return Translate(log, err, "")
	}
	return nil
}

func (s *AccountService) hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", domain.BadRequest("Password must be at least 8 characters long")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", domain.Internal(MsgUnexpected, err)
	}
	return hash, nil
}

func (s *AccountService) registrationError(log *slog.Logger, err error, kind, username, email, phone string) error {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return domain.Conflict("User with username %s already exists", username)
	case errors.Is(err, store.ErrEmailExists):
		return domain.Conflict("%s with email %s already exists", kind, email)
	case errors.Is(err, store.ErrPhoneExists):
		return domain.Conflict("%s with phone number %s already exists", kind, phone)
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.BadRequest("City does not exist")
	}
	return Translate(log, err, "")
}
