package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     ErrorKind
	}{
		{"not found", NotFound("Job Ad with id %d not found", 1), ErrNotFound, KindNotFound},
		{"bad request", BadRequest("nope"), ErrBadRequest, KindBadRequest},
		{"forbidden", Forbidden(MsgMatchAlreadySent), ErrForbidden, KindForbidden},
		{"unauthorized", Unauthorized("Could not authenticate user"), ErrUnauthorized, KindUnauthorized},
		{"conflict", Conflict("Username already taken"), ErrConflict, KindConflict},
		{"internal", Internal("Could not create token", errors.New("boom")), ErrInternal, KindInternal},
		{"wrapped", fmt.Errorf("service: %w", Forbidden("x")), ErrForbidden, KindForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestErrorDoesNotMatchOtherKinds(t *testing.T) {
	t.Parallel()

	err := NotFound("missing")
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, NotFound("missing"), "only detail-free sentinels match by kind")
}

func TestInternalUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("signing failed")
	err := Internal("Could not create token", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Could not create token")
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("jobAdID", "has invalid format", ErrInvalidID)

	assert.Equal(t, "jobAdID has invalid format", err.Error())
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, KindBadRequest, KindOf(err))

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "jobAdID has invalid format", appErr.Detail)

	defaulted := NewValidationError("name", "cannot be empty", nil)
	assert.ErrorIs(t, defaulted, ErrValidation)
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "internal", ErrorKind(99).String())
}
