// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/udlz/scouting/internal/adapters/store"
	service "github.com/udlz/scouting/internal/app"
	"github.com/udlz/scouting/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LoadTable(ctx context.Context, table record.Table) *store.TableView
	SaveTable(ctx context.Context, table record.Table, rows []record.Record) error
	AppendRecord(ctx context.Context, table record.Table, rec record.Record) error
	CreateReport(ctx context.Context, rec record.Record, role, scoutName string) error
	CreateUnregisteredReport(ctx context.Context, rec record.Record, role, scoutName string) error
	Dashboard(ctx context.Context) *DashboardView
	PlayerProfile(ctx context.Context, name string) (*ProfileView, error)
	Compare(ctx context.Context, players []string, position string) (*CompareView, error)
	ExportReport(ctx context.Context, index int) (string, error)
}

// View shapes mirror the read models returned by the service layer.
type (
	DashboardView = service.DashboardView
	ProfileView   = service.ProfileView
	CompareView   = service.CompareView
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	tablesHandler    *TablesHandler
	reportsHandler   *ReportsHandler
	dashboardHandler *DashboardHandler
	playersHandler   *PlayersHandler
	compareHandler   *CompareHandler
	exportHandler    *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		tablesHandler:    NewTablesHandler(deps),
		reportsHandler:   NewReportsHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		playersHandler:   NewPlayersHandler(deps),
		compareHandler:   NewCompareHandler(deps),
		exportHandler:    NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/reports/unregistered", MetricsMiddleware(s.reportsHandler.HandleCreateUnregistered, "reports_unregistered"))
	mux.HandleFunc("/reports", MetricsMiddleware(s.reportsHandler.HandleCreateReport, "reports"))
	mux.HandleFunc("/exports/report", MetricsMiddleware(s.exportHandler.HandleExportReport, "exports_report"))
	mux.HandleFunc("/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/tables/", MetricsMiddleware(s.tablesHandler.HandleTables, "tables"))
}

// Caller identity headers. There is no account system; the deployment
// trusts its single-tenant network and identifies callers by header.
const (
	headerRole  = "X-Role"
	headerScout = "X-Scout"

	roleAdmin = "admin"
	roleScout = "scout"
)

// callerRole extracts the role and scout name headers, defaulting the
// role to admin so a bare local deployment works without headers.
func callerRole(r *http.Request) (role, scout string) {
	role = r.Header.Get(headerRole)
	if role == "" {
		role = roleAdmin
	}
	return role, r.Header.Get(headerScout)
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewKind tags a sentinel error with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel error with the operation and the cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
