// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/udlz/scouting/internal/adapters/report"
	"github.com/udlz/scouting/internal/adapters/store"
	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/pkg/logger"
)

// defaultTopStandouts caps the dashboard standout panel.
const defaultTopStandouts = 5

// Service implements the API dependencies for the scouting system. Every
// operation reloads the tables it needs; there is no cross-request cache.
type Service struct {
	mu sync.Mutex

	store    *store.Store
	renderer *report.Renderer

	// Configuration
	dataDir       string
	exportDir     string
	documentTitle string
	crestPath     string
	watermarkPath string
	fontPath      string
	topStandouts  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the directory holding the table files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithExportDir sets the directory receiving generated PDFs.
func WithExportDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.exportDir = dir
		}
	}
}

// WithDocumentTitle sets the PDF header title.
func WithDocumentTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.documentTitle = title
		}
	}
}

// WithBranding sets the crest and watermark asset paths.
func WithBranding(crest, watermark string) Option {
	return func(s *Service) {
		s.crestPath = crest
		s.watermarkPath = watermark
	}
}

// WithFontPath sets the Unicode TTF for PDF rendering.
func WithFontPath(path string) Option {
	return func(s *Service) {
		s.fontPath = path
	}
}

// WithTopStandouts caps the dashboard standout panel.
func WithTopStandouts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topStandouts = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "data",
		exportDir:     ".",
		documentTitle: "Scouting Department",
		topStandouts:  defaultTopStandouts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = store.New(s.dataDir, store.WithLogger(s.logger))
	s.renderer = report.NewRenderer(
		report.WithTitle(s.documentTitle),
		report.WithExportDir(s.exportDir),
		report.WithBranding(s.crestPath, s.watermarkPath),
		report.WithFontPath(s.fontPath),
		report.WithLogger(s.logger),
	)

	s.started = true
	s.logger.Info(ctx, "scouting service started",
		logger.String("dataDir", s.dataDir),
		logger.String("exportDir", s.exportDir))
	return nil
}

// Stop releases service resources. The store is stateless, so this only
// flips the started flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// LoadTable returns the tabular view of one table.
func (s *Service) LoadTable(ctx context.Context, table record.Table) *store.TableView {
	return s.store.Load(ctx, table)
}

// SaveTable replaces the whole table with the edited view.
func (s *Service) SaveTable(ctx context.Context, table record.Table, rows []record.Record) error {
	return s.store.Save(ctx, table, rows)
}

// AppendRecord appends one record to a table.
func (s *Service) AppendRecord(ctx context.Context, table record.Table, rec record.Record) error {
	return s.store.Append(ctx, table, rec)
}

// CreateReport validates and persists a new scouting report. When role is
// "scout" the report is assigned to scoutName regardless of the payload.
func (s *Service) CreateReport(ctx context.Context, rec record.Record, role, scoutName string) error {
	if role == "scout" && scoutName != "" {
		rec[record.FieldScout] = scoutName
	}
	if strings.TrimSpace(rec.Text(record.FieldPlayer)) == "" {
		return fmt.Errorf("%w: player name is required", ErrValidation)
	}
	if strings.TrimSpace(rec.Text(record.FieldScout)) == "" {
		return fmt.Errorf("%w: scout name is required", ErrValidation)
	}
	if err := s.store.Append(ctx, record.TableReport, rec); err != nil {
		return err
	}
	s.logger.Info(ctx, "report created",
		logger.String("player", rec.Text(record.FieldPlayer)),
		logger.String("scout", rec.Text(record.FieldScout)))
	return nil
}

// CreateUnregisteredReport persists a report for a player missing from the
// Player table and synthesizes the Player record from the report's
// demographic fields.
func (s *Service) CreateUnregisteredReport(ctx context.Context, rec record.Record, role, scoutName string) error {
	if err := s.CreateReport(ctx, rec, role, scoutName); err != nil {
		return err
	}

	name := rec.Text(record.FieldPlayer)
	players := s.store.Load(ctx, record.TablePlayer)
	for _, row := range players.Rows {
		if row.Text(record.FieldPlayer) == name {
			return nil
		}
	}

	player := record.Record{record.FieldPlayer: name}
	for _, f := range []string{record.FieldBirthDate, record.FieldClub, record.FieldUnder23} {
		if v := rec.Text(f); v != "" {
			player[f] = v
		}
	}
	if err := s.store.Append(ctx, record.TablePlayer, player); err != nil {
		return err
	}
	s.logger.Info(ctx, "player synthesized from report", logger.String("player", name))
	return nil
}
