// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/udlz/scouting/internal/app"
)

// CompareHandler handles side-by-side player comparison requests.
type CompareHandler struct {
	deps Dependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleCompare handles GET /compare?players=a,b[&position=p] requests.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var players []string
	for _, p := range strings.Split(r.URL.Query().Get("players"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}
	view, err := h.deps.Compare(r.Context(), players, r.URL.Query().Get("position"))
	if err != nil {
		if errors.Is(err, service.ErrTooFewPlayers) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
