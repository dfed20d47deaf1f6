package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/jobmatch-api/internal/api/shared"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/service"
)

// AccountHandler serves professional and company accounts.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	if accounts == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("accounts cannot be nil for AccountHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{accounts: accounts, logger: logger.With(slog.String("component", "account_handler"))}
}

// RegisterProfessional handles POST /professionals.
func (h *AccountHandler) RegisterProfessional(w http.ResponseWriter, r *http.Request) {
	var req RegisterProfessionalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := h.accounts.RegisterProfessional(r.Context(), service.RegisterProfessionalInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		CityID:      req.CityID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, p)
}

// GetProfessional handles GET /professionals/{professionalID}.
func (h *AccountHandler) GetProfessional(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "professionalID")
	if !ok {
		return
	}
	p, err := h.accounts.GetProfessional(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, p)
}

// ListProfessionals handles GET /professionals.
func (h *AccountHandler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	items, err := h.accounts.ListProfessionals(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// RegisterCompany handles POST /companies.
func (h *AccountHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req RegisterCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	c, err := h.accounts.RegisterCompany(r.Context(), service.RegisterCompanyInput{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CityID:      req.CityID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, c)
}

// GetCompany handles GET /companies/{companyID}.
func (h *AccountHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "companyID")
	if !ok {
		return
	}
	c, err := h.accounts.GetCompany(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, c)
}

// ListCompanies handles GET /companies.
func (h *AccountHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	items, err := h.accounts.ListCompanies(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Me handles GET /professionals/me and /companies/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	var (
		body any
		err  error
	)
	if p.Role == domain.RoleCompany {
		body, err = h.accounts.GetCompany(r.Context(), p.SubjectID)
	} else {
		body, err = h.accounts.GetProfessional(r.Context(), p.SubjectID)
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, body)
}

// UpdateMe handles PUT /professionals/me.
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	var req ProfessionalUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in := service.ProfessionalUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		CityID:      req.CityID,
	}
	if req.Status != nil {
		status := domain.ProfessionalStatus(*req.Status)
		in.Status = &status
	}
	prof, err := h.accounts.UpdateProfessional(r.Context(), p.SubjectID, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prof)
}
