package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
// Implementations are stateless and safe for concurrent use.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the subject.
	GenerateToken(ctx context.Context, subjectID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken validates an access token and extracts its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the subject.
	GenerateRefreshToken(ctx context.Context, subjectID uuid.UUID, role domain.Role) (string, error)

	// ValidateRefreshToken validates a refresh token and extracts its claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a valid token.
type Claims struct {
	SubjectID uuid.UUID
	Role      domain.Role
	TokenType TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
