// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/udlz/scouting/internal/domain/record"
)

// TablesHandler handles raw table reads and edits.
type TablesHandler struct {
	deps Dependencies
}

// NewTablesHandler creates a new tables handler.
func NewTablesHandler(deps Dependencies) *TablesHandler {
	return &TablesHandler{deps: deps}
}

// tableWriteRequest mirrors the OpenAPI schema for PUT /tables/{name}.
type tableWriteRequest struct {
	Rows []record.Record `json:"rows"`
}

// HandleTables routes GET and PUT /tables/{name} and
// POST /tables/{name}/records.
func (h *TablesHandler) HandleTables(w http.ResponseWriter, r *http.Request) {
	const op = "api.tables"

	path := strings.TrimPrefix(r.URL.Path, "/tables/")
	name, rest, _ := strings.Cut(path, "/")
	table, ok := record.ParseTable(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, record.ErrUnknownTable))
		return
	}

	switch {
	case rest == "records" && r.Method == http.MethodPost:
		h.appendRecord(w, r, table)
	case rest != "":
		http.NotFound(w, r)
	case r.Method == http.MethodGet:
		if role, _ := callerRole(r); role != roleAdmin {
			writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
			return
		}
		writeJSON(w, http.StatusOK, h.deps.LoadTable(r.Context(), table))
	case r.Method == http.MethodPut:
		h.replaceTable(w, r, table)
	default:
		http.NotFound(w, r)
	}
}

// replaceTable overwrites the whole table with the submitted rows. Table
// edits are an administrative operation.
func (h *TablesHandler) replaceTable(w http.ResponseWriter, r *http.Request, table record.Table) {
	const op = "api.replace_table"

	if role, _ := callerRole(r); role != roleAdmin {
		writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
		return
	}
	var req tableWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.SaveTable(r.Context(), table, req.Rows); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}

// appendRecord adds one row. Reference tables are admin-only; the report
// table also accepts appends from scouts.
func (h *TablesHandler) appendRecord(w http.ResponseWriter, r *http.Request, table record.Table) {
	const op = "api.append_record"

	if role, _ := callerRole(r); role != roleAdmin && table != record.TableReport {
		writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
		return
	}
	var rec record.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.AppendRecord(r.Context(), table, rec); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
}
