package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/service"
)

// JobHandler serves job ads and job applications.
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	if jobs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jobs cannot be nil for JobHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{jobs: jobs, logger: logger.With(slog.String("component", "job_handler"))}
}

// CreateJobAd handles POST /job-ads. Company only.
func (h *JobHandler) CreateJobAd(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	var req JobAdRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	ad, err := h.jobs.CreateJobAd(r.Context(), p.SubjectID, service.JobAdInput{
		CategoryID:  req.CategoryID,
		CityID:      req.CityID,
		Title:       req.Title,
		Description: req.Description,
		Salary:      domain.SalaryRange{Min: req.MinSalary, Max: req.MaxSalary},
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ad)
}

// GetJobAd handles GET /job-ads/{jobAdID}.
func (h *JobHandler) GetJobAd(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "jobAdID")
	if !ok {
		return
	}
	ad, err := h.jobs.GetJobAd(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ad)
}

// ListJobAds handles GET /job-ads. Only active ads are listed; the optional
// category_id query parameter narrows the result.
func (h *JobHandler) ListJobAds(w http.ResponseWriter, r *http.Request) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	categoryID, err := getOptionalUUIDQuery(r, "category_id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	ads, err := h.jobs.ListJobAds(r.Context(), categoryID, page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ads)
}

// ListOwnJobAds handles GET /companies/me/job-ads.
func (h *JobHandler) ListOwnJobAds(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	ads, err := h.jobs.ListCompanyJobAds(r.Context(), p.SubjectID, page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ads)
}

// UpdateJobAdStatus handles PATCH /job-ads/{jobAdID}/status. Owner only.
func (h *JobHandler) UpdateJobAdStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID")
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	ad, err := h.jobs.UpdateJobAdStatus(r.Context(), p.SubjectID, ids[0], domain.JobAdStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("job ad status changed",
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("status", string(ad.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, ad)
}

// UpdateJobAd handles PUT /job-ads/{jobAdID}. Owner only.
func (h *JobHandler) UpdateJobAd(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID")
	if !ok {
		return
	}
	var req JobAdUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in := service.JobAdUpdate{
		CategoryID:  req.CategoryID,
		CityID:      req.CityID,
		Title:       req.Title,
		Description: req.Description,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
	}
	if req.Status != nil {
		status := domain.JobAdStatus(*req.Status)
		in.Status = &status
	}
	ad, err := h.jobs.UpdateJobAd(r.Context(), p.SubjectID, ids[0], in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ad)
}

// CreateJobApplication handles POST /job-applications. Professional only.
func (h *JobHandler) CreateJobApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	var req JobApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	app, err := h.jobs.CreateJobApplication(r.Context(), p.SubjectID, service.JobApplicationInput{
		CategoryID:  req.CategoryID,
		CityID:      req.CityID,
		Name:        req.Name,
		Description: req.Description,
		Salary:      domain.SalaryRange{Min: req.MinSalary, Max: req.MaxSalary},
		IsMain:      req.IsMain,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, app)
}

// GetJobApplication handles GET /job-applications/{jobApplicationID}.
func (h *JobHandler) GetJobApplication(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "jobApplicationID")
	if !ok {
		return
	}
	app, err := h.jobs.GetJobApplication(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, app)
}

// ListJobApplications handles GET /job-applications. Only active
// applications are listed.
func (h *JobHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	categoryID, err := getOptionalUUIDQuery(r, "category_id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	apps, err := h.jobs.ListJobApplications(r.Context(), categoryID, page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, apps)
}

// UpdateJobApplicationStatus handles PATCH /job-applications/{jobApplicationID}/status.
func (h *JobHandler) UpdateJobApplicationStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobApplicationID")
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	app, err := h.jobs.UpdateJobApplicationStatus(
		r.Context(), p.SubjectID, ids[0], domain.JobApplicationStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, app)
}
