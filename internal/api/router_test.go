package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/api"
	"github.com/phrazzld/jobmatch-api/internal/api/middleware"
	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/config"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/mocks"
	"github.com/phrazzld/jobmatch-api/internal/service"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
	"github.com/phrazzld/jobmatch-api/internal/service/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t        *testing.T
	db       *mocks.MemoryDB
	handler  http.Handler
	city     domain.City
	category domain.Category
}

func newTestServer(t *testing.T, loginBurst int) *testServer {
	t.Helper()
	db := mocks.NewMemoryDB()
	passwords := &mocks.PlainPasswords{}

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                  "test-secret-that-is-at-least-32-characters",
		AccessTokenLifetimeMinutes: 15,
		RefreshTokenLifetimeDays:   7,
	})
	require.NoError(t, err)
	authSvc := auth.NewService(db.Professionals(), db.Companies(), jwtSvc, passwords, nil)

	guards := service.NewGuards(service.GuardStores{
		Professionals:   db.Professionals(),
		Companies:       db.Companies(),
		JobAds:          db.JobAds(),
		JobApplications: db.JobApplications(),
		Catalog:         db.Catalog(),
	}, nil)
	matchSvc := match.NewService(match.Deps{
		Tx:              db,
		Matches:         db.Matches(),
		JobAds:          db.JobAds(),
		JobApplications: db.JobApplications(),
		Companies:       db.Companies(),
		Guards:          guards,
	})

	qualSvc := service.NewQualificationService(db.JobSkills(), db.Requirements(), guards, nil)

	handler := api.NewRouter(api.RouterConfig{
		Auth:           api.NewAuthHandler(authSvc, nil),
		Accounts:       api.NewAccountHandler(service.NewAccountService(db.Professionals(), db.Companies(), guards, passwords, nil), nil),
		Jobs:           api.NewJobHandler(service.NewJobService(db.JobAds(), db.JobApplications(), guards, nil), nil),
		Catalog:        api.NewCatalogHandler(service.NewCatalogService(db.Catalog(), guards, nil), nil),
		Matches:        api.NewMatchHandler(matchSvc, nil),
		Qualifications: api.NewQualificationHandler(qualSvc, nil),
		Verifier:       authSvc,
		LoginLimiter:   middleware.NewRateLimiter(60, loginBurst, time.Minute),
	})

	return &testServer{
		t:        t,
		db:       db,
		handler:  handler,
		city:     db.AddCity("Varna"),
		category: db.AddCategory("Engineering"),
	}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:4242"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) login(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Username: username, Password: "password1"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[api.LoginResponse](s.t, rec).AccessToken
}

type seeded struct {
	profToken    string
	companyToken string
	adID         uuid.UUID
	appID        uuid.UUID
}

func (s *testServer) seed() seeded {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/professionals", "", api.RegisterProfessionalRequest{
		Username: "georgi", Password: "password1", Email: "georgi@example.com",
		FirstName: "Georgi", LastName: "Dimitrov", CityID: s.city.ID,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/companies", "", api.RegisterCompanyRequest{
		Username: "initech", Password: "password1", Name: "Initech", Email: "hr@initech.test",
		PhoneNumber: "+359888333444", CityID: s.city.ID,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	out := seeded{profToken: s.login("georgi"), companyToken: s.login("initech")}

	rec = s.do(http.MethodPost, "/api/v1/job-ads", out.companyToken, api.JobAdRequest{
		CategoryID: s.category.ID, CityID: s.city.ID, Title: "SRE", MinSalary: 3000, MaxSalary: 5000,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	out.adID = decode[domain.JobAd](s.t, rec).ID

	rec = s.do(http.MethodPost, "/api/v1/job-applications", out.profToken, api.JobApplicationRequest{
		CategoryID: s.category.ID, CityID: s.city.ID, Name: "Platform engineer", MinSalary: 3500, MaxSalary: 4500,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	out.appID = decode[domain.JobApplication](s.t, rec).ID
	return out
}

func TestAuthEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	s.seed()

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Username: "georgi", Password: "password1"})
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode[api.LoginResponse](t, rec)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.RefreshToken)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Username: "georgi", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not authenticate user", decode[shared.ErrorResponse](t, rec).Detail)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "georgi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, "/api/v1/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		require.Equal(t, http.StatusOK, rec.Code, "refresh token stays valid after use")
		refreshed := decode[api.RefreshTokenResponse](t, rec)
		assert.NotEmpty(t, refreshed.AccessToken)
	}

	rec = s.do(http.MethodPost, "/api/v1/auth/refresh", "", api.RefreshTokenRequest{RefreshToken: pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/professionals/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "georgi", decode[domain.Professional](t, rec).Username)
	assert.NotContains(t, rec.Body.String(), "hashed:")
}

func TestLoginRateLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Username: "nobody", Password: "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Username: "nobody", Password: "x"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/cities", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "other routes are not limited")
}

func TestMatchFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	d := s.seed()

	requestPath := "/api/v1/job-applications/" + d.appID.String() + "/match-requests/" + d.adID.String()
	respondPath := "/api/v1/job-ads/" + d.adID.String() + "/match-requests/" + d.appID.String()

	rec := s.do(http.MethodPost, requestPath, d.profToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[api.MatchRequestResponse](t, rec)
	assert.Equal(t, "Match Request successfully sent", created.Message)
	assert.Equal(t, domain.MatchStatusRequestedByJobApplication, created.Status)

	rec = s.do(http.MethodPost, respondPath, d.companyToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Match Request already sent", decode[shared.ErrorResponse](t, rec).Detail)

	rec = s.do(http.MethodGet, "/api/v1/companies/me/match-requests", d.companyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.MatchResponse](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/v1/job-ads/"+d.adID.String()+"/match-requests/received", d.companyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.MatchResponse](t, rec), 1)

	rec = s.do(http.MethodPut, requestPath, d.profToken, map[string]bool{"accept_request": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Cannot respond to your own match request", decode[shared.ErrorResponse](t, rec).Detail)

	rec = s.do(http.MethodPut, respondPath, d.companyToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "accept_request is required")

	rec = s.do(http.MethodPut, respondPath, d.companyToken, map[string]bool{"accept_request": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Match Request accepted", decode[shared.MessageResponse](t, rec).Message)

	rec = s.do(http.MethodPut, respondPath, d.companyToken, map[string]bool{"accept_request": false})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Match Request already accepted", decode[shared.ErrorResponse](t, rec).Detail)

	for _, path := range []string{requestPath, respondPath} {
		token := d.profToken
		if path == respondPath {
			token = d.companyToken
		}
		rec = s.do(http.MethodPost, path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, "Match Request already accepted", decode[shared.ErrorResponse](t, rec).Detail, path)
	}

	rec = s.do(http.MethodGet, "/api/v1/job-applications/"+d.appID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.JobApplicationStatusMatched, decode[domain.JobApplication](t, rec).Status)
}

func TestProfileAndJobAdUpdates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	d := s.seed()
	adPath := "/api/v1/job-ads/" + d.adID.String()

	rec := s.do(http.MethodPut, "/api/v1/professionals/me", d.profToken, map[string]string{
		"status": "busy", "description": "Kubernetes on call",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	prof := decode[domain.Professional](t, rec)
	assert.Equal(t, domain.ProfessionalStatusBusy, prof.Status)
	assert.Equal(t, "Georgi", prof.FirstName)

	rec = s.do(http.MethodPut, "/api/v1/professionals/me", d.profToken, map[string]string{"status": "away"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/professionals/me", d.companyToken, map[string]string{"status": "busy"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, adPath, d.companyToken, map[string]any{"title": "Senior SRE", "max_salary": 7000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ad := decode[domain.JobAd](t, rec)
	assert.Equal(t, "Senior SRE", ad.Title)
	assert.Equal(t, domain.SalaryRange{Min: 3000, Max: 7000}, ad.SalaryRange)

	rec = s.do(http.MethodPut, adPath, d.companyToken, map[string]any{"max_salary": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "max below the stored min")

	rec = s.do(http.MethodPut, adPath, d.profToken, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, adPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Senior SRE", decode[domain.JobAd](t, rec).Title)
}

func TestQualificationEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	d := s.seed()

	rec := s.do(http.MethodPost, "/api/v1/categories/"+s.category.ID.String()+"/skills", d.companyToken,
		api.SkillRequest{Name: "Terraform"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	skill := decode[domain.Skill](t, rec)

	adSkill := "/api/v1/job-ads/" + d.adID.String() + "/skills/" + skill.ID.String()
	rec = s.do(http.MethodPut, adSkill, d.companyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]domain.Skill](t, rec), 1)

	rec = s.do(http.MethodPut, adSkill, d.companyToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	appSkill := "/api/v1/job-applications/" + d.appID.String() + "/skills/" + skill.ID.String()
	rec = s.do(http.MethodPut, appSkill, d.profToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodDelete, appSkill, d.profToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, appSkill, d.profToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/job-applications/"+d.appID.String()+"/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Skill](t, rec))

	rec = s.do(http.MethodPost, "/api/v1/companies/me/requirements", d.companyToken,
		api.RequirementRequest{Description: "On-call experience", SkillLevel: "advanced"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	req := decode[domain.Requirement](t, rec)

	rec = s.do(http.MethodPost, "/api/v1/companies/me/requirements", d.companyToken,
		api.RequirementRequest{Description: "Go", SkillLevel: "guru"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	reqPath := "/api/v1/job-ads/" + d.adID.String() + "/requirements/" + req.ID.String()
	rec = s.do(http.MethodPut, reqPath, d.companyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/job-ads/"+d.adID.String()+"/requirements", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]domain.Requirement](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.SkillLevelAdvanced, listed[0].SkillLevel)

	rec = s.do(http.MethodDelete, reqPath, d.companyToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/companies/me/requirements", d.companyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Requirement](t, rec), 1)
}

func TestErrorResponses(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	d := s.seed()
	missing := uuid.New()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       any
		wantStatus int
		wantDetail string
	}{
		{
			name:       "unknown job ad",
			method:     http.MethodGet,
			path:       "/api/v1/job-ads/" + missing.String(),
			wantStatus: http.StatusNotFound,
			wantDetail: "Job Ad with id " + missing.String() + " not found",
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/api/v1/job-ads/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "professional on a company route",
			method:     http.MethodPost,
			path:       "/api/v1/job-ads",
			token:      d.profToken,
			body:       api.JobAdRequest{CategoryID: s.category.ID, CityID: s.city.ID, Title: "x"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no token",
			method:     http.MethodGet,
			path:       "/api/v1/companies/me",
			wantStatus: http.StatusUnauthorized,
			wantDetail: middleware.MsgAuthorizationRequired,
		},
		{
			name:       "garbage token",
			method:     http.MethodGet,
			path:       "/api/v1/companies/me",
			token:      "not-a-jwt",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not verify token",
		},
		{
			name:       "job ad owned by someone else",
			method:     http.MethodPost,
			path:       "/api/v1/job-ads/" + missing.String() + "/match-requests/" + d.appID.String(),
			token:      d.companyToken,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "duplicate username",
			method:     http.MethodPost,
			path:       "/api/v1/companies",
			body: api.RegisterCompanyRequest{
				Username: "georgi", Password: "password1", Name: "G Ltd", Email: "g@ltd.test",
				PhoneNumber: "+359888999000", CityID: s.city.ID,
			},
			wantStatus: http.StatusConflict,
			wantDetail: "User with username georgi already exists",
		},
		{
			name:       "validation failure",
			method:     http.MethodPost,
			path:       "/api/v1/professionals",
			body:       map[string]any{"username": "ab", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown body field",
			method:     http.MethodPost,
			path:       "/api/v1/auth/login",
			body:       map[string]string{"username": "a", "password": "b", "extra": "c"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid request format",
		},
		{
			name:       "negative limit",
			method:     http.MethodGet,
			path:       "/api/v1/job-ads?limit=-1",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			body := decode[shared.ErrorResponse](t, rec)
			assert.Equal(t, tc.wantStatus, body.Status)
			assert.NotEmpty(t, body.TraceID)
			assert.NotEmpty(t, body.Detail)
			if tc.wantDetail != "" {
				assert.Equal(t, tc.wantDetail, body.Detail)
			}
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	s.db.FailOn("CatalogStore.ListCategories", errors.New("pq: password=hunter2 connection refused"))

	rec := s.do(http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[shared.ErrorResponse](t, rec)
	assert.Equal(t, api.MsgUnexpected, body.Detail)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10)
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
