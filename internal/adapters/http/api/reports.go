// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/udlz/scouting/internal/app"
	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/pkg/metrics"
)

// ReportsHandler handles report creation.
type ReportsHandler struct {
	deps Dependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleCreateReport handles POST /reports requests.
func (h *ReportsHandler) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "api.create_report", h.deps.CreateReport)
}

// HandleCreateUnregistered handles POST /reports/unregistered requests,
// which also register the player when the Player table lacks them.
func (h *ReportsHandler) HandleCreateUnregistered(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "api.create_unregistered_report", h.deps.CreateUnregisteredReport)
}

func (h *ReportsHandler) create(w http.ResponseWriter, r *http.Request, op string,
	persist func(ctx context.Context, rec record.Record, role, scoutName string) error) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var rec record.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	role, scout := callerRole(r)
	if err := persist(r.Context(), rec, role, scout); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	metrics.RecordReportCreated()
	writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
}
