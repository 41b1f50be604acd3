package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/usecase"
)

type UserHandler struct {
	Directory  *usecase.Directory
	ManageUser *usecase.ManageUserUseCase
}

func NewUserHandler(directory *usecase.Directory, manageUser *usecase.ManageUserUseCase) *UserHandler {
	return &UserHandler{Directory: directory, ManageUser: manageUser}
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var input usecase.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := h.ManageUser.Create(ctx, requester, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var input usecase.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := h.ManageUser.Update(ctx, requester, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
