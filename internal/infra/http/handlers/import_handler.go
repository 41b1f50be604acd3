package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vnnovate/crm-core/internal/infra/http/middleware"
	"github.com/vnnovate/crm-core/internal/usecase"
)

type ImportHandler struct {
	Directory *usecase.Directory
	Importer  *usecase.BulkImportUseCase
}

func NewImportHandler(directory *usecase.Directory, importer *usecase.BulkImportUseCase) *ImportHandler {
	return &ImportHandler{Directory: directory, Importer: importer}
}

type importRequest struct {
	Items []usecase.LeadImportItem `json:"items"`
}

// Handle runs the batch and maps the report onto 200 (all created),
// 207 (partial) or 422 (none created). The body always carries the full
// per-item report.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := h.Directory.RequireActive(ctx, middleware.RequesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items must not be empty"})
		return
	}

	report, err := h.Importer.Execute(ctx, requester, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordImport(report.Created, report.Failed)

	status := http.StatusOK
	switch {
	case report.Created == 0:
		status = http.StatusUnprocessableEntity
	case report.Failed > 0:
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, report)
}
