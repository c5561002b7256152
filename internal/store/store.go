// Package store is the SQLite-backed data provider for blood panel data.
// It owns the two relations (components and their dated entries) and exposes
// the ordered query surface the rolodex renders from, plus the mutations the
// CRUD forms commit through.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/agustinfitipaldi/blood/internal/errors"
	"github.com/agustinfitipaldi/blood/internal/logger"

	_ "modernc.org/sqlite"
)

const (
	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY churn for a single-user app.
	maxOpenConns = 1
	maxIdleConns = 1

	// DateLayout is the only accepted entry date shape. Anything else in
	// the database is a contract violation, not something to recover from.
	DateLayout = "2006-01-02"
)

// Component is a named lab measurement type tracked over time (e.g., HbA1c).
// NormalMin/NormalMax form the optional clinically-normal band.
type Component struct {
	ID        int64
	Name      string
	Unit      string
	NormalMin *float64
	NormalMax *float64
	LongTitle string
}

// HasNormalRange reports whether both bounds of the normal band are set.
func (c Component) HasNormalRange() bool {
	return c.NormalMin != nil && c.NormalMax != nil
}

// Entry is one dated measurement value for a component.
type Entry struct {
	ID          int64
	ComponentID int64
	Value       float64
	Date        string // YYYY-MM-DD
	Notes       string
}

// Store wraps the SQLite database holding components and entries.
type Store struct {
	db   *sql.DB
	path string
	log  logger.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS components (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    unit TEXT NOT NULL,
    normal_min REAL,
    normal_max REAL,
    long_title TEXT
);

CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    component_id INTEGER NOT NULL REFERENCES components(id) ON DELETE CASCADE,
    value REAL NOT NULL,
    date TEXT NOT NULL,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_entries_component ON entries(component_id);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrStore,
				"Cannot create database directory: "+dir,
				"Check directory permissions or set a different path with --db")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot open database: "+path,
			"Check the file is a valid SQLite database")
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	s := &Store{db: db, path: path, log: logger.NewEnvLogger("[store]")}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot enable foreign keys", "")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot initialize database schema",
			"The database file may be corrupt; move it aside and retry")
	}

	s.log.Debug("opened database at %s", path)
	return s, nil
}

// Path returns the filesystem path of the underlying database.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ValidateDate checks that a date string is in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Invalid date: "+date,
			"Dates must be in YYYY-MM-DD form, e.g. 2025-01-15")
	}
	return nil
}

// ListComponents returns all components ordered by name. The order is stable
// across calls, which the rolodex relies on for index-based selection.
func (s *Store) ListComponents(ctx context.Context) ([]Component, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit, normal_min, normal_max, COALESCE(long_title, '')
		 FROM components ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot list components")
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		var c Component
		var nmin, nmax sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.Name, &c.Unit, &nmin, &nmax, &c.LongTitle); err != nil {
			return nil, errors.Wrap(err, "Cannot read component row")
		}
		if nmin.Valid {
			v := nmin.Float64
			c.NormalMin = &v
		}
		if nmax.Valid {
			v := nmax.Float64
			c.NormalMax = &v
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// GetComponent returns a single component by id.
func (s *Store) GetComponent(ctx context.Context, id int64) (Component, error) {
	var c Component
	var nmin, nmax sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit, normal_min, normal_max, COALESCE(long_title, '')
		 FROM components WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Unit, &nmin, &nmax, &c.LongTitle)
	if err == sql.ErrNoRows {
		return c, errors.New(errors.ErrStore, "Component not found", "")
	}
	if err != nil {
		return c, errors.Wrap(err, "Cannot read component")
	}
	if nmin.Valid {
		v := nmin.Float64
		c.NormalMin = &v
	}
	if nmax.Valid {
		v := nmax.Float64
		c.NormalMax = &v
	}
	return c, nil
}

// FindComponent returns the component with the given name, matched exactly.
func (s *Store) FindComponent(ctx context.Context, name string) (Component, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM components WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return Component{}, errors.New(errors.ErrStore,
			"No component named '"+name+"'",
			"Run 'blood component list' to see what exists")
	}
	if err != nil {
		return Component{}, errors.Wrap(err, "Cannot look up component")
	}
	return s.GetComponent(ctx, id)
}

// CreateComponent inserts a new component and returns its id.
func (s *Store) CreateComponent(ctx context.Context, c Component) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO components (name, unit, normal_min, normal_max, long_title)
		 VALUES (?, ?, ?, ?, NULLIF(?, ''))`,
		c.Name, c.Unit, nullable(c.NormalMin), nullable(c.NormalMax), c.LongTitle)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot create component '"+c.Name+"'",
			"Component names must be unique")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "Cannot read new component id")
	}
	s.log.Debug("created component %q (id %d)", c.Name, id)
	return id, nil
}

// DeleteComponent removes a component. Its entries cascade.
func (s *Store) DeleteComponent(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id); err != nil {
		return errors.Wrap(err, "Cannot delete component")
	}
	return nil
}

// RecentEntries returns up to limit most recent entries for a component,
// ordered oldest to newest. Ties on date break by insertion order.
func (s *Store) RecentEntries(ctx context.Context, componentID int64, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, component_id, value, date, COALESCE(notes, '')
		 FROM (
		     SELECT * FROM entries WHERE component_id = ?
		     ORDER BY date DESC, id DESC LIMIT ?
		 ) ORDER BY date ASC, id ASC`, componentID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot read recent entries")
	}
	defer rows.Close()
	return scanEntries(rows)
}

// AllEntries returns every entry for a component, ordered oldest to newest.
func (s *Store) AllEntries(ctx context.Context, componentID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, component_id, value, date, COALESCE(notes, '')
		 FROM entries WHERE component_id = ?
		 ORDER BY date ASC, id ASC`, componentID)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot read entries")
	}
	defer rows.Close()
	return scanEntries(rows)
}

// EntryCount returns the number of entries recorded for a component.
func (s *Store) EntryCount(ctx context.Context, componentID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE component_id = ?`, componentID).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "Cannot count entries")
	}
	return n, nil
}

// AddEntry inserts a new entry and returns its id. The date is validated
// before it touches the database.
func (s *Store) AddEntry(ctx context.Context, e Entry) (int64, error) {
	if err := ValidateDate(e.Date); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (component_id, value, date, notes)
		 VALUES (?, ?, ?, NULLIF(?, ''))`,
		e.ComponentID, e.Value, e.Date, e.Notes)
	if err != nil {
		return 0, errors.Wrap(err, "Cannot add entry")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "Cannot read new entry id")
	}
	s.log.Debug("added entry %d for component %d", id, e.ComponentID)
	return id, nil
}

// UpdateEntry rewrites an existing entry's value, date, and notes.
func (s *Store) UpdateEntry(ctx context.Context, e Entry) error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE entries SET value = ?, date = ?, notes = NULLIF(?, '') WHERE id = ?`,
		e.Value, e.Date, e.Notes, e.ID); err != nil {
		return errors.Wrap(err, "Cannot update entry")
	}
	return nil
}

// DeleteEntry removes an entry by id.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return errors.Wrap(err, "Cannot delete entry")
	}
	return nil
}

// scanEntries reads entry rows, rejecting malformed dates as a contract
// violation rather than rendering wrong data.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ComponentID, &e.Value, &e.Date, &e.Notes); err != nil {
			return nil, errors.Wrap(err, "Cannot read entry row")
		}
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrStore,
				"Entry "+e.Date+" has a malformed date",
				"The database holds a date not in YYYY-MM-DD form; fix it with a SQLite client")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
