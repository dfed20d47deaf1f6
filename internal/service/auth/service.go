package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/metrics"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/redact"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service authenticates professionals and companies and issues, verifies and
// refreshes their tokens. It holds no mutable state.
type Service struct {
	professionals store.ProfessionalStore
	companies     store.CompanyStore
	tokens        JWTService
	passwords     PasswordVerifier
	logger        *slog.Logger
}

// NewService creates an authentication Service.
func NewService(
	professionals store.ProfessionalStore,
	companies store.CompanyStore,
	tokens JWTService,
	passwords PasswordVerifier,
	logger *slog.Logger,
) *Service {
	if professionals == nil || companies == nil || tokens == nil || passwords == nil {
		panic("auth service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		professionals: professionals,
		companies:     companies,
		tokens:        tokens,
		passwords:     passwords,
		logger:        logger.With(slog.String("component", "auth_service")),
	}
}

// Authenticate resolves username to a subject and checks its password.
// Professionals are looked up before companies; the first match wins.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.Credentials, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creds, err := s.lookupCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Debug("login failed: unknown username")
			return nil, domain.Unauthorized(MsgCouldNotAuthenticate)
		}
		log.Error("login lookup failed", slog.String("error", redact.Error(err)))
		return nil, domain.Internal(MsgCouldNotAuthenticate, err)
	}

	if err := s.passwords.Compare(creds.PasswordHash, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("role", string(creds.Role)))
		return nil, domain.Unauthorized(MsgCouldNotAuthenticate)
	}
	return creds, nil
}

func (s *Service) lookupCredentials(ctx context.Context, username string) (*domain.Credentials, error) {
	p, err := s.professionals.GetByUsername(ctx, username)
	if err == nil {
		return &domain.Credentials{SubjectID: p.ID, Role: domain.RoleProfessional, PasswordHash: p.PasswordHash}, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	c, err := s.companies.GetByUsername(ctx, username)
	if err == nil {
		return &domain.Credentials{SubjectID: c.ID, Role: domain.RoleCompany, PasswordHash: c.PasswordHash}, nil
	}
	if store.IsNotFoundError(err) {
		return nil, ErrInvalidCredentials
	}
	return nil, err
}

// IssueTokens mints an access token and a refresh token for the subject.
func (s *Service) IssueTokens(ctx context.Context, subjectID uuid.UUID, role domain.Role) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, subjectID, role)
	if err != nil {
		return nil, domain.Internal(MsgCouldNotCreateToken, err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, subjectID, role)
	if err != nil {
		return nil, domain.Internal(MsgCouldNotCreateToken, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login authenticates the credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	creds, err := s.Authenticate(ctx, username, password)
	if err != nil {
		outcome := "failure"
		if domain.KindOf(err) == domain.KindInternal {
			outcome = "error"
		}
		metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
		return nil, err
	}

	pair, err := s.IssueTokens(ctx, creds.SubjectID, creds.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.FromContextOrDefault(ctx, s.logger).Info("subject logged in",
		slog.String("subject_id", creds.SubjectID.String()),
		slog.String("role", string(creds.Role)))
	return pair, nil
}

// Verify validates an access token and confirms its subject still exists.
func (s *Service) Verify(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.resolveSubject(ctx, claims); err != nil {
		return nil, err
	}
	return &domain.Principal{SubjectID: claims.SubjectID, Role: claims.Role, ExpiresAt: claims.ExpiresAt}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", tokenError(err)
	}
	if err := s.resolveSubject(ctx, claims); err != nil {
		return "", err
	}
	access, err := s.tokens.GenerateToken(ctx, claims.SubjectID, claims.Role)
	if err != nil {
		return "", domain.Internal(MsgCouldNotCreateToken, err)
	}
	return access, nil
}

func (s *Service) resolveSubject(ctx context.Context, claims *Claims) error {
	var err error
	switch claims.Role {
	case domain.RoleProfessional:
		_, err = s.professionals.GetByID(ctx, claims.SubjectID)
	case domain.RoleCompany:
		_, err = s.companies.GetByID(ctx, claims.SubjectID)
	default:
		return domain.Unauthorized(MsgCouldNotVerify)
	}
	if err == nil {
		return nil
	}
	if store.IsNotFoundError(err) {
		return domain.Unauthorized(MsgCouldNotAuthenticate)
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("subject lookup failed",
		slog.String("subject_id", claims.SubjectID.String()),
		slog.String("error", redact.Error(err)))
	return domain.Internal(MsgCouldNotVerify, err)
}

func tokenError(err error) error {
	if errors.Is(err, ErrExpiredToken) {
		return &domain.Error{Kind: domain.KindUnauthorized, Detail: MsgTokenExpired, Err: err}
	}
	return &domain.Error{Kind: domain.KindUnauthorized, Detail: MsgCouldNotVerify, Err: err}
}
