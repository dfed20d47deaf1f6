package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/config"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                  testSecret,
		AccessTokenLifetimeMinutes: 15,
		RefreshTokenLifetimeDays:   7,
	}
}

func newTestService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(testAuthConfig(), now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.AuthConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.AuthConfig) {}},
		{name: "short secret", mutate: func(c *config.AuthConfig) { c.JWTSecret = "short" }, wantErr: true},
		{name: "zero access lifetime", mutate: func(c *config.AuthConfig) { c.AccessTokenLifetimeMinutes = 0 }, wantErr: true},
		{name: "zero refresh lifetime", mutate: func(c *config.AuthConfig) { c.RefreshTokenLifetimeDays = 0 }, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := testAuthConfig()
			tc.mutate(&cfg)
			_, err := NewJWTService(cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return fixedTime })
	subjectID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), subjectID, domain.RoleCompany)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, subjectID, claims.SubjectID)
	assert.Equal(t, domain.RoleCompany, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestTokenLifetimesAreIndependent(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return fixedTime })
	ctx := context.Background()
	subjectID := uuid.New()

	access, err := svc.GenerateToken(ctx, subjectID, domain.RoleProfessional)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, subjectID, domain.RoleProfessional)
	require.NoError(t, err)

	accessClaims, err := svc.ValidateToken(ctx, access)
	require.NoError(t, err)
	refreshClaims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)

	assert.Equal(t, fixedTime.Add(15*time.Minute).Unix(), accessClaims.ExpiresAt.Unix())
	assert.Equal(t, fixedTime.Add(7*24*time.Hour).Unix(), refreshClaims.ExpiresAt.Unix())
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	subjectID := uuid.New()

	issuer := newTestService(t, func() time.Time { return issuedAt })
	access, err := issuer.GenerateToken(ctx, subjectID, domain.RoleProfessional)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(ctx, subjectID, domain.RoleProfessional)
	require.NoError(t, err)

	wrongCfg := testAuthConfig()
	wrongCfg.JWTSecret = "wrong-secret-that-is-long-enough-for-testing"
	wrongIssuer, err := newHMACJWTService(wrongCfg, func() time.Time { return issuedAt })
	require.NoError(t, err)
	forged, err := wrongIssuer.GenerateToken(ctx, subjectID, domain.RoleProfessional)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		Role:      domain.RoleProfessional,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: access, now: issuedAt.Add(time.Minute)},
		{name: "expired", token: access, now: issuedAt.Add(16 * time.Minute), wantErr: ErrExpiredToken},
		{name: "wrong signature", token: forged, now: issuedAt, wantErr: ErrInvalidToken},
		{name: "malformed", token: "not-a-jwt", now: issuedAt, wantErr: ErrInvalidToken},
		{name: "none algorithm", token: noneToken, now: issuedAt, wantErr: ErrInvalidToken},
		{name: "refresh presented as access", token: refresh, now: issuedAt, wantErr: ErrWrongTokenType},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, func() time.Time { return tc.now })
			claims, err := svc.ValidateToken(ctx, tc.token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, subjectID, claims.SubjectID)
		})
	}
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Now)
	access, err := svc.GenerateToken(context.Background(), uuid.New(), domain.RoleCompany)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestClockSkewLeeway(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := testAuthConfig()
	cfg.ClockSkewSeconds = 30
	issuer, err := newHMACJWTService(cfg, func() time.Time { return issuedAt })
	require.NoError(t, err)
	token, err := issuer.GenerateToken(context.Background(), uuid.New(), domain.RoleProfessional)
	require.NoError(t, err)

	justExpired, err := newHMACJWTService(cfg, func() time.Time {
		return issuedAt.Add(15*time.Minute + 10*time.Second)
	})
	require.NoError(t, err)
	_, err = justExpired.ValidateToken(context.Background(), token)
	assert.NoError(t, err, "expiry within the leeway is accepted")

	pastLeeway, err := newHMACJWTService(cfg, func() time.Time {
		return issuedAt.Add(15*time.Minute + time.Minute)
	})
	require.NoError(t, err)
	_, err = pastLeeway.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	v := NewBcryptVerifier(4)
	hash, err := v.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, v.Compare(hash, "correct horse"))
	assert.Error(t, v.Compare(hash, "wrong"))

	assert.Equal(t, 10, NewBcryptVerifier(0).cost, "out of range cost falls back to the default")
}
