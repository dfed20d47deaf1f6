package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/config"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeoutSeconds: 1, MetricsEnabled: true},
		Database: config.DatabaseConfig{
			URL: "postgres://jobmatch@localhost:5432/jobmatch", MaxOpenConns: 2, ConnMaxLifetimeMinutes: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:                  "app-test-secret-that-is-long-enough-1234",
			AccessTokenLifetimeMinutes: 15,
			RefreshTokenLifetimeDays:   7,
			BcryptCost:                 4,
			LoginRatePerMinute:         10,
			LoginBurst:                 5,
		},
		Cache: config.CacheConfig{Driver: "memory", TTLSeconds: 60},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(context.Background(), cfg, logger.New("error", &bytes.Buffer{}), db)
	require.NoError(t, err)
	return app, mock
}

func TestNewApplication_RejectsShortSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = newApplication(context.Background(), cfg, slog.Default(), db)
	assert.Error(t, err)
}

func TestNewApplication_RejectsUnknownCacheDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Driver = "memcached"
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = newApplication(context.Background(), cfg, slog.Default(), db)
	assert.ErrorContains(t, err, "cache")
}

func TestRoutes_Health(t *testing.T) {
	app, mock := newTestApp(t, testConfig())
	h := app.routes()

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_CitiesAreCached(t *testing.T) {
	app, mock := newTestApp(t, testConfig())
	h := app.routes()

	mock.ExpectQuery("SELECT id, name FROM cities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uuid.NewString(), "Plovdiv"))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Plovdiv")
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "second request is served from cache")
}

func TestRoutes_Metrics(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	h := app.routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/job-ads/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `jobmatch_http_requests_total{method="GET",route="/api/v1/job-ads/{jobAdID}",status="400"}`)
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MetricsEnabled = false
	app, _ := newTestApp(t, cfg)

	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunMigrations_UnknownCommand(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = runMigrations(context.Background(), db, "sideways", slog.Default())
	assert.ErrorContains(t, err, `unknown migration command "sideways"`)
}

func TestSlogGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &slogGooseLogger{logger: logger.New("info", &buf)}

	l.Printf("OK   %s\n", "00001_create_reference_tables.sql")
	l.Fatalf("failed: %v", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "00001_create_reference_tables.sql")
	assert.Contains(t, out, "failed: boom")
}
