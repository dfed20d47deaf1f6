package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/service/match"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

// MatchHandler serves match requests between job applications and job ads.
type MatchHandler struct {
	matches *match.Service
	logger  *slog.Logger
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matches *match.Service, logger *slog.Logger) *MatchHandler {
	if matches == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("matches cannot be nil for MatchHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchHandler{matches: matches, logger: logger.With(slog.String("component", "match_handler"))}
}

// RequestFromJobApplication handles
// POST /job-applications/{jobApplicationID}/match-requests/{jobAdID}.
func (h *MatchHandler) RequestFromJobApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobApplicationID", "jobAdID")
	if !ok {
		return
	}
	res, err := h.matches.RequestFromJobApplication(r.Context(), p.SubjectID, ids[0], ids[1])
	h.writeCreated(w, r, res, err)
}

// RequestFromJobAd handles POST /job-ads/{jobAdID}/match-requests/{jobApplicationID}.
func (h *MatchHandler) RequestFromJobAd(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "jobApplicationID")
	if !ok {
		return
	}
	res, err := h.matches.RequestFromJobAd(r.Context(), p.SubjectID, ids[0], ids[1])
	h.writeCreated(w, r, res, err)
}

// RespondAsJobApplication handles
// PUT /job-applications/{jobApplicationID}/match-requests/{jobAdID}.
func (h *MatchHandler) RespondAsJobApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobApplicationID", "jobAdID")
	if !ok {
		return
	}
	var req MatchResponseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.matches.ProcessRequestFromJobApplication(r.Context(), p.SubjectID, ids[0], ids[1], *req.AcceptRequest)
	h.writeMessage(w, r, res, err)
}

// RespondAsJobAd handles PUT /job-ads/{jobAdID}/match-requests/{jobApplicationID}.
func (h *MatchHandler) RespondAsJobAd(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, "jobAdID", "jobApplicationID")
	if !ok {
		return
	}
	var req MatchResponseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.matches.ProcessRequestFromCompany(r.Context(), p.SubjectID, ids[0], ids[1], *req.AcceptRequest)
	h.writeMessage(w, r, res, err)
}

type listFn func(ctx context.Context, ownerID, targetID uuid.UUID, page store.Page) ([]*domain.Match, error)

// ListForJobApplication handles GET /job-applications/{jobApplicationID}/match-requests.
func (h *MatchHandler) ListForJobApplication(w http.ResponseWriter, r *http.Request) {
	h.listTarget(w, r, "jobApplicationID", h.matches.ListForJobApplication)
}

// ListReceivedByJobAd handles GET /job-ads/{jobAdID}/match-requests/received.
func (h *MatchHandler) ListReceivedByJobAd(w http.ResponseWriter, r *http.Request) {
	h.listTarget(w, r, "jobAdID", h.matches.ListReceivedByJobAd)
}

// ListSentByJobAd handles GET /job-ads/{jobAdID}/match-requests/sent.
func (h *MatchHandler) ListSentByJobAd(w http.ResponseWriter, r *http.Request) {
	h.listTarget(w, r, "jobAdID", h.matches.ListSentByJobAd)
}

// ListMine handles GET /companies/me/match-requests and
// GET /professionals/me/match-requests.
func (h *MatchHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var items []*domain.Match
	if p.Role == domain.RoleCompany {
		items, err = h.matches.ListForCompany(r.Context(), p.SubjectID, page)
	} else {
		items, err = h.matches.ListForProfessional(r.Context(), p.SubjectID, page)
	}
	h.writeList(w, r, items, err)
}

func (h *MatchHandler) listTarget(w http.ResponseWriter, r *http.Request, param string, list listFn) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, param)
	if !ok {
		return
	}
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	items, err := list(r.Context(), p.SubjectID, ids[0], page)
	h.writeList(w, r, items, err)
}

func (h *MatchHandler) writeCreated(w http.ResponseWriter, r *http.Request, res *match.Result, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, MatchRequestResponse{Message: res.Message, Status: res.Status})
}

func (h *MatchHandler) writeMessage(w http.ResponseWriter, r *http.Request, res *match.Result, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: res.Message})
}

func (h *MatchHandler) writeList(w http.ResponseWriter, r *http.Request, items []*domain.Match, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lo.Map(items, matchToResponse))
}
