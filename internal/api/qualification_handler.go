package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/service"
)

// QualificationHandler serves skill links and company requirements.
type QualificationHandler struct {
	quals  *service.QualificationService
	logger *slog.Logger
}

// NewQualificationHandler creates a QualificationHandler.
func NewQualificationHandler(quals *service.QualificationService, logger *slog.Logger) *QualificationHandler {
	if quals == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("quals cannot be nil for QualificationHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QualificationHandler{
		quals:  quals,
		logger: logger.With(slog.String("component", "qualification_handler")),
	}
}

// ListJobAdSkills handles GET /job-ads/{jobAdID}/skills.
func (h *QualificationHandler) ListJobAdSkills(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "jobAdID")
	if !ok {
		return
	}
	items, err := h.quals.ListJobAdSkills(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AddJobAdSkill handles PUT /job-ads/{jobAdID}/skills/{skillID}. Owner only.
func (h *QualificationHandler) AddJobAdSkill(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "skillID")
	if !ok {
		return
	}
	items, err := h.quals.AddJobAdSkill(r.Context(), p.SubjectID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// RemoveJobAdSkill handles DELETE /job-ads/{jobAdID}/skills/{skillID}. Owner only.
func (h *QualificationHandler) RemoveJobAdSkill(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "skillID")
	if !ok {
		return
	}
	if err := h.quals.RemoveJobAdSkill(r.Context(), p.SubjectID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListJobApplicationSkills handles GET /job-applications/{jobApplicationID}/skills.
func (h *QualificationHandler) ListJobApplicationSkills(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "jobApplicationID")
	if !ok {
		return
	}
	items, err := h.quals.ListJobApplicationSkills(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AddJobApplicationSkill handles PUT /job-applications/{jobApplicationID}/skills/{skillID}.
func (h *QualificationHandler) AddJobApplicationSkill(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobApplicationID", "skillID")
	if !ok {
		return
	}
	items, err := h.quals.AddJobApplicationSkill(r.Context(), p.SubjectID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// RemoveJobApplicationSkill handles DELETE /job-applications/{jobApplicationID}/skills/{skillID}.
func (h *QualificationHandler) RemoveJobApplicationSkill(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobApplicationID", "skillID")
	if !ok {
		return
	}
	if err := h.quals.RemoveJobApplicationSkill(r.Context(), p.SubjectID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRequirement handles POST /companies/me/requirements.
func (h *QualificationHandler) CreateRequirement(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	var req RequirementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	item, err := h.quals.CreateRequirement(r.Context(), p.SubjectID, req.Description, domain.SkillLevel(req.SkillLevel))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// ListOwnRequirements handles GET /companies/me/requirements.
func (h *QualificationHandler) ListOwnRequirements(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	items, err := h.quals.ListCompanyRequirements(r.Context(), p.SubjectID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// ListJobAdRequirements handles GET /job-ads/{jobAdID}/requirements.
func (h *QualificationHandler) ListJobAdRequirements(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "jobAdID")
	if !ok {
		return
	}
	items, err := h.quals.ListJobAdRequirements(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AttachRequirement handles PUT /job-ads/{jobAdID}/requirements/{requirementID}.
func (h *QualificationHandler) AttachRequirement(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "requirementID")
	if !ok {
		return
	}
	items, err := h.quals.AttachRequirement(r.Context(), p.SubjectID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// DetachRequirement handles DELETE /job-ads/{jobAdID}/requirements/{requirementID}.
func (h *QualificationHandler) DetachRequirement(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "requirementID")
	if !ok {
		return
	}
	if err := h.quals.DetachRequirement(r.Context(), p.SubjectID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
