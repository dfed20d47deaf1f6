package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/config"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/mocks"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	db           *mocks.MemoryDB
	svc          *auth.Service
	professional *domain.Professional
	company      *domain.Company
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	ctx := context.Background()
	db := mocks.NewMemoryDB()
	city := db.AddCity("Sofia")

	p, err := domain.NewProfessional("ivan", "hashed:pro-pass", "ivan@example.com", "Ivan", "Petrov", "", city.ID)
	require.NoError(t, err)
	require.NoError(t, db.Professionals().Create(ctx, p))

	c, err := domain.NewCompany("acme", "hashed:co-pass", "Acme", "", "hr@acme.test", "+359888000000", city.ID)
	require.NoError(t, err)
	require.NoError(t, db.Companies().Create(ctx, c))

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                  "test-secret-that-is-long-enough-for-testing",
		AccessTokenLifetimeMinutes: 15,
		RefreshTokenLifetimeDays:   7,
	})
	require.NoError(t, err)

	svc := auth.NewService(db.Professionals(), db.Companies(), tokens, &mocks.PlainPasswords{}, nil)
	return authFixture{db: db, svc: svc, professional: p, company: c}
}

func assertDomainError(t *testing.T, err error, kind domain.ErrorKind, detail string) {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %T: %v", err, err)
	assert.Equal(t, kind, de.Kind)
	assert.Equal(t, detail, de.Detail)
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
		wantRole domain.Role
		wantID   uuid.UUID
		wantErr  bool
	}{
		{name: "professional", username: "ivan", password: "pro-pass", wantRole: domain.RoleProfessional, wantID: f.professional.ID},
		{name: "company", username: "acme", password: "co-pass", wantRole: domain.RoleCompany, wantID: f.company.ID},
		{name: "wrong password", username: "ivan", password: "nope", wantErr: true},
		{name: "unknown username", username: "ghost", password: "pro-pass", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			creds, err := f.svc.Authenticate(context.Background(), tc.username, tc.password)
			if tc.wantErr {
				assertDomainError(t, err, domain.KindUnauthorized, auth.MsgCouldNotAuthenticate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, creds.Role)
			assert.Equal(t, tc.wantID, creds.SubjectID)
		})
	}
}

func TestService_AuthenticateProfessionalWinsUsernameCollision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t)

	// The per-table unique keys do not stop a company from reusing a
	// professional's username; the professional is resolved first.
	c, err := domain.NewCompany("ivan", "hashed:pro-pass", "Ivan Ltd", "", "ivan@ltd.test", "+359888111111", f.company.CityID)
	require.NoError(t, err)
	require.NoError(t, f.db.Companies().Create(ctx, c))

	creds, err := f.svc.Authenticate(ctx, "ivan", "pro-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProfessional, creds.Role)
	assert.Equal(t, f.professional.ID, creds.SubjectID)
}

func TestService_AuthenticateStoreFailureIsInternal(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)
	f.db.FailOn("ProfessionalStore.GetByUsername", errors.New("connection refused"))

	_, err := f.svc.Authenticate(context.Background(), "ivan", "pro-pass")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestService_LoginVerifyRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t)

	pair, err := f.svc.Login(ctx, "acme", "co-pass")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	principal, err := f.svc.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.company.ID, principal.SubjectID)
	assert.Equal(t, domain.RoleCompany, principal.Role)
	assert.False(t, principal.ExpiresAt.IsZero())

	_, err = f.svc.Verify(ctx, pair.RefreshToken)
	assertDomainError(t, err, domain.KindUnauthorized, auth.MsgCouldNotVerify)

	access, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	refreshed, err := f.svc.Verify(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, f.company.ID, refreshed.SubjectID)

	// The refresh token is not rotated.
	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)

	_, err = f.svc.Refresh(ctx, pair.AccessToken)
	assertDomainError(t, err, domain.KindUnauthorized, auth.MsgCouldNotVerify)
}

func TestService_VerifyMapsTokenErrors(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)
	subjectID := uuid.New()

	tests := []struct {
		name       string
		claims     *auth.Claims
		validErr   error
		wantDetail string
	}{
		{name: "expired", validErr: auth.ErrExpiredToken, wantDetail: auth.MsgTokenExpired},
		{name: "invalid", validErr: auth.ErrInvalidToken, wantDetail: auth.MsgCouldNotVerify},
		{
			name:       "subject no longer exists",
			claims:     &auth.Claims{SubjectID: subjectID, Role: domain.RoleProfessional, TokenType: auth.TokenTypeAccess},
			wantDetail: auth.MsgCouldNotAuthenticate,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := &mocks.MockJWTService{Claims: tc.claims, ValidateErr: tc.validErr}
			svc := auth.NewService(f.db.Professionals(), f.db.Companies(), tokens, &mocks.PlainPasswords{}, nil)

			_, err := svc.Verify(context.Background(), "token")
			assertDomainError(t, err, domain.KindUnauthorized, tc.wantDetail)
		})
	}
}

func TestService_IssueTokensSigningFailure(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)
	tokens := &mocks.MockJWTService{Err: errors.New("signing failed")}
	svc := auth.NewService(f.db.Professionals(), f.db.Companies(), tokens, &mocks.PlainPasswords{}, nil)

	_, err := svc.IssueTokens(context.Background(), f.professional.ID, domain.RoleProfessional)
	assertDomainError(t, err, domain.KindInternal, auth.MsgCouldNotCreateToken)
}

func TestNewService_NilDependencyPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { auth.NewService(nil, nil, nil, nil, nil) })
}
