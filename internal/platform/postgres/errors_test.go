package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{
			name:   "professional username",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "professionals_username_key"},
			wantIs: store.ErrUsernameExists,
		},
		{
			name:   "company phone",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "companies_phone_number_key"},
			wantIs: store.ErrPhoneExists,
		},
		{
			name:   "wrapped company email",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "companies_email_key"}),
			wantIs: store.ErrEmailExists,
		},
		{
			name:   "unknown unique constraint",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "other_key"},
			wantIs: store.ErrDuplicate,
		},
		{
			name:    "foreign key",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "job_ads_company_id_fkey"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "job_ads_company_id_fkey",
		},
		{
			name:    "check",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "matches_status_check"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "check constraint violation",
		},
		{
			name:    "not null",
			err:     &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "title",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.wantIs)
			if tt.wantMsg != "" {
				assert.Contains(t, got.Error(), tt.wantMsg)
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Same(t, orig, MapError(orig))
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("ctx: %w", &pgconn.PgError{Code: uniqueViolationCode})
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}
	check := &pgconn.PgError{Code: checkViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.True(t, IsCheckConstraintViolation(check))
	assert.False(t, IsCheckConstraintViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrMatchNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrMatchNotFound), store.ErrMatchNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))

	resultErr := errors.New("driver failure")
	err := CheckRowsAffected(sqlmock.NewErrorResult(resultErr), nil)
	assert.ErrorIs(t, err, resultErr)
}
