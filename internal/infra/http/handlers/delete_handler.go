package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/usecase"
)

type DeleteHandler struct {
	Directory *usecase.Directory
	Cascade   *usecase.CascadeDeleteUseCase
}

func NewDeleteHandler(directory *usecase.Directory, cascade *usecase.CascadeDeleteUseCase) *DeleteHandler {
	return &DeleteHandler{Directory: directory, Cascade: cascade}
}

func (h *DeleteHandler) HandleClient(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.RootClient)
}

func (h *DeleteHandler) HandleLead(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.RootLead)
}

func (h *DeleteHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.RootProject)
}

func (h *DeleteHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.RootUser)
}

func (h *DeleteHandler) handle(w http.ResponseWriter, r *http.Request, root usecase.RootType) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := usecase.DeleteOptions{
		ReassignToUserID: r.URL.Query().Get("reassign_to"),
	}

	report, err := h.Cascade.Execute(ctx, requester, root, chi.URLParam(r, "id"), opts)
	if err != nil {
		middleware.RecordCascadeDelete(string(root), "rejected")
		writeError(w, err)
		return
	}

	middleware.RecordCascadeDelete(string(root), "deleted")
	writeJSON(w, http.StatusOK, report)
}
