package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// getPrincipal returns the principal placed in the context by the
// authentication middleware. It writes a 401 and returns false when absent.
func getPrincipal(w http.ResponseWriter, r *http.Request) (*domain.Principal, bool) {
	p, ok := shared.PrincipalFrom(r.Context())
	if !ok || p.SubjectID == uuid.Nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("principal not found in request context")
		HandleAPIError(w, r, domain.Unauthorized("Could not authenticate user"))
		return nil, false
	}
	return p, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// pathUUIDs parses every named path parameter, writing a 400 on the first
// failure.
func pathUUIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := getPathUUID(r, name)
		if err != nil {
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Debug("invalid path parameter",
					slog.String("param_name", name),
					slog.String("value", chi.URLParam(r, name)))
			HandleAPIError(w, r, err)
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// getPage reads limit and offset query parameters. Missing values take the
// store defaults; malformed or negative values are a bad request.
func getPage(r *http.Request) (store.Page, error) {
	var page store.Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, domain.BadRequest("Query parameter limit must be a non-negative integer")
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, domain.BadRequest("Query parameter offset must be a non-negative integer")
		}
		page.Offset = n
	}
	return page.Normalize(), nil
}

// getOptionalUUIDQuery parses an optional UUID query parameter.
func getOptionalUUIDQuery(r *http.Request, name string) (uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, domain.BadRequest("Query parameter %s must be a valid UUID", name)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}
