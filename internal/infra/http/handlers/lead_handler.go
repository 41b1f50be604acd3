package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/usecase"
)

type LeadHandler struct {
	Leads      usecase.LeadRepositoryInterface
	Directory  *usecase.Directory
	Access     *usecase.AccessEvaluator
	UpdateLead *usecase.UpdateLeadUseCase
}

func NewLeadHandler(leads usecase.LeadRepositoryInterface, directory *usecase.Directory, access *usecase.AccessEvaluator, updateLead *usecase.UpdateLeadUseCase) *LeadHandler {
	return &LeadHandler{
		Leads:      leads,
		Directory:  directory,
		Access:     access,
		UpdateLead: updateLead,
	}
}

// HandleList returns the leads the requester may see, already masked.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	leads, err := h.Leads.FindAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := h.Access.EvaluateLeadAccess(ctx, requester, leads)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads": views,
		"total": len(views),
	})
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	lead, err := h.UpdateLead.Execute(ctx, requester, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
