// Package store persists tables as flat JSON files, one file per table.
//
// The on-disk shape is a JSON array of {"fields": {...}} objects. Records
// are identified by their position in the array; every mutation is a
// full-file overwrite with no concurrent-writer protection.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/pkg/logger"
	"github.com/udlz/scouting/pkg/metrics"
)

// TableView is the tabular projection of one table: the declared default
// columns first, then any extra fields seen on disk in first-seen order.
type TableView struct {
	Table   record.Table    `json:"table"`
	Columns []string        `json:"columns"`
	Rows    []record.Record `json:"rows"`
}

// Store reads and rewrites table files under a single directory. It keeps
// no state between calls beyond the files themselves.
type Store struct {
	dir string
	log logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// diskRecord is the persisted envelope of one row.
type diskRecord struct {
	Fields record.Record `json:"fields"`
}

// Load reads a table into a tabular view. A missing file is created empty;
// a malformed file yields an empty view instead of an error.
func (s *Store) Load(ctx context.Context, table record.Table) *TableView {
	metrics.RecordTableLoad(string(table))

	rows := s.readAll(ctx, table)
	view := &TableView{
		Table:   table,
		Columns: columnsFor(table, rows),
		Rows:    rows,
	}
	metrics.SetTableRows(string(table), len(rows))
	return view
}

// Save rewrites the whole table file from the given rows. Blank fields are
// dropped per row before writing; zeros are values and are kept.
func (s *Store) Save(ctx context.Context, table record.Table, rows []record.Record) error {
	metrics.RecordTableSave(string(table))

	disk := make([]diskRecord, 0, len(rows))
	for _, row := range rows {
		fields := make(record.Record, len(row))
		for name, v := range row {
			if record.Blank(v) {
				continue
			}
			fields[name] = v
		}
		disk = append(disk, diskRecord{Fields: fields})
	}

	data, err := json.MarshalIndent(disk, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveTable, table, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveTable, table, err)
	}
	if err := os.WriteFile(s.path(table), data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveTable, table, err)
	}
	return nil
}

// Append loads the table, adds one record, and saves. Not atomic with
// respect to concurrent callers; last writer wins.
func (s *Store) Append(ctx context.Context, table record.Table, rec record.Record) error {
	metrics.RecordTableAppend(string(table))

	rows := s.readAll(ctx, table)
	rows = append(rows, rec)
	return s.Save(ctx, table, rows)
}

func (s *Store) path(table record.Table) string {
	return filepath.Join(s.dir, string(table)+".json")
}

// readAll returns every record of the table. Corrupt or missing content is
// recovered locally as "no records".
func (s *Store) readAll(ctx context.Context, table record.Table) []record.Record {
	path := s.path(table)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Lazily create the empty table file on first access.
		if err := os.MkdirAll(s.dir, 0o755); err == nil {
			_ = os.WriteFile(path, []byte("[]"), 0o644)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordCorruptRecovery(string(table))
		s.log.Warn(ctx, "table file unreadable, treating as empty",
			logger.String("table", string(table)), logger.Error(err))
		return nil
	}

	var disk []diskRecord
	if err := json.Unmarshal(data, &disk); err != nil {
		metrics.RecordCorruptRecovery(string(table))
		s.log.Warn(ctx, "table file malformed, treating as empty",
			logger.String("table", string(table)), logger.Error(err))
		return nil
	}

	rows := make([]record.Record, 0, len(disk))
	for _, d := range disk {
		if d.Fields == nil {
			d.Fields = record.Record{}
		}
		rows = append(rows, d.Fields)
	}
	return rows
}

// columnsFor unions the schema's default fields with every extra field
// seen across the rows. Extras append in row order; within one row they
// are sorted, since map iteration order would vary between loads.
func columnsFor(table record.Table, rows []record.Record) []string {
	var cols []string
	known := make(map[string]struct{})
	for _, def := range record.Schema(table) {
		cols = append(cols, def.Name)
		known[def.Name] = struct{}{}
	}
	for _, row := range rows {
		var extras []string
		for name := range row {
			if _, ok := known[name]; !ok {
				known[name] = struct{}{}
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		cols = append(cols, extras...)
	}
	return cols
}
