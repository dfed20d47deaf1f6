package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/service"
)

// CatalogHandler serves categories, skills and cities.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for CatalogHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{catalog: catalog, logger: logger.With(slog.String("component", "catalog_handler"))}
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	c, err := h.catalog.CreateCategory(r.Context(), req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, c)
}

// ListCategorySkills handles GET /categories/{categoryID}/skills.
func (h *CatalogHandler) ListCategorySkills(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "categoryID")
	if !ok {
		return
	}
	items, err := h.catalog.ListSkills(r.Context(), &ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// CreateSkill handles POST /categories/{categoryID}/skills.
func (h *CatalogHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "categoryID")
	if !ok {
		return
	}
	var req SkillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sk, err := h.catalog.CreateSkill(r.Context(), ids[0], req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, sk)
}

// ListSkills handles GET /skills.
func (h *CatalogHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListSkills(r.Context(), nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// ListCities handles GET /cities.
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListCities(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
