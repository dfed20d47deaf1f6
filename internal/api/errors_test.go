package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"not found", domain.NotFound("Job Ad with id %s not found", "x"), http.StatusNotFound},
		{"bad request", domain.BadRequest("nope"), http.StatusBadRequest},
		{"forbidden", domain.Forbidden(domain.MsgMatchAlreadySent), http.StatusForbidden},
		{"unauthorized", domain.Unauthorized(auth.MsgCouldNotVerify), http.StatusUnauthorized},
		{"conflict", domain.Conflict("taken"), http.StatusConflict},
		{"internal", domain.Internal(MsgUnexpected, errors.New("boom")), http.StatusInternalServerError},
		{"wrapped domain error", fmt.Errorf("handler: %w", domain.Forbidden("no")), http.StatusForbidden},
		{"validation error", domain.NewValidationError("title", "is required", domain.ErrValidation), http.StatusBadRequest},
		{"expired token", fmt.Errorf("verify: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, MsgUnexpected},
		{"domain detail", domain.NotFound("Job Ad with id %d not found", 7), "Job Ad with id 7 not found"},
		{"internal detail hidden", domain.Internal("sql: password=secret", errors.New("x")), MsgUnexpected},
		{"plain error hidden", errors.New("pq: relation users does not exist"), MsgUnexpected},
		{"expired token", auth.ErrExpiredToken, auth.MsgTokenExpired},
		{"invalid token", auth.ErrInvalidToken, auth.MsgCouldNotVerify},
		{"bad credentials", auth.ErrInvalidCredentials, auth.MsgCouldNotAuthenticate},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `validate:"required,email"`
		Phone string `validate:"required,e164"`
	}
	err := validator.New().Struct(payload{Email: "not-an-email", Phone: "123"})
	require.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Equal(t, "Invalid Email: invalid email format; Invalid Phone: invalid phone number format", msg)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, msg, GetSafeErrorMessage(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
