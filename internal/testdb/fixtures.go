package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixture holds the ids of a minimal connected data set: one city and one
// category, a company with a job ad and a professional with a job application.
type Fixture struct {
	CityID           uuid.UUID
	CategoryID       uuid.UUID
	CompanyID        uuid.UUID
	JobAdID          uuid.UUID
	ProfessionalID   uuid.UUID
	JobApplicationID uuid.UUID
}

// SeedFixture inserts a Fixture inside tx with unique usernames and emails.
func SeedFixture(t *testing.T, tx *sql.Tx) Fixture {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	suffix := uuid.NewString()[:8]
	f := Fixture{
		CityID:           uuid.New(),
		CategoryID:       uuid.New(),
		CompanyID:        uuid.New(),
		JobAdID:          uuid.New(),
		ProfessionalID:   uuid.New(),
		JobApplicationID: uuid.New(),
	}

	exec := func(query string, args ...any) {
		_, err := tx.ExecContext(ctx, query, args...)
		require.NoError(t, err, "Failed to seed fixture: %s", query)
	}

	exec(`INSERT INTO cities (id, name) VALUES ($1, $2)`, f.CityID, "City "+suffix)
	exec(`INSERT INTO categories (id, title, description) VALUES ($1, $2, '')`,
		f.CategoryID, "Category "+suffix)
	exec(`INSERT INTO companies (id, username, password_hash, name, email, phone_number, city_id, created_at, updated_at)
		VALUES ($1, $2, 'hash', $3, $4, $5, $6, $7, $7)`,
		f.CompanyID, "co"+suffix, "Company "+suffix, fmt.Sprintf("co%s@example.com", suffix), "+359"+suffix,
		f.CityID, now)
	exec(`INSERT INTO professionals (id, username, password_hash, email, first_name, last_name, city_id, created_at, updated_at)
		VALUES ($1, $2, 'hash', $3, 'Test', 'Professional', $4, $5, $5)`,
		f.ProfessionalID, "pro"+suffix, fmt.Sprintf("pro%s@example.com", suffix), f.CityID, now)
	exec(`INSERT INTO job_ads (id, company_id, category_id, city_id, title, min_salary, max_salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'Backend Engineer', 1000, 2000, $5, $5)`,
		f.JobAdID, f.CompanyID, f.CategoryID, f.CityID, now)
	exec(`INSERT INTO job_applications (id, professional_id, category_id, city_id, name, min_salary, max_salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'Go developer', 1000, 2000, $5, $5)`,
		f.JobApplicationID, f.ProfessionalID, f.CategoryID, f.CityID, now)

	return f
}
