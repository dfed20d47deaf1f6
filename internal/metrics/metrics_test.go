package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotentAndExposed(t *testing.T) {
	require.NotPanics(t, Register)
	require.NotPanics(t, Register)

	MatchTransitionsTotal.WithLabelValues("match.accepted", "job_ad").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`jobmatch_match_transitions_total{event="match.accepted",side="job_ad"}`)
}
