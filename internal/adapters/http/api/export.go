// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	service "github.com/udlz/scouting/internal/app"
)

// ExportHandler handles PDF export requests.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// exportRequest mirrors the OpenAPI schema for POST /exports/report.
type exportRequest struct {
	Index int `json:"index"`
}

// HandleExportReport handles POST /exports/report requests. The rendered
// document comes back as the response body.
func (h *ExportHandler) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	path, err := h.deps.ExportReport(r.Context(), req.Index)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
