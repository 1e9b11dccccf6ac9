// Package sqlite provides a SQLite-backed filter state storage.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/filters"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS view_filters (
	view       TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

const (
	upsertSQL = `
INSERT INTO view_filters (view, state, updated_at) VALUES (?, ?, ?)
ON CONFLICT(view) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`
	selectAllSQL = `SELECT view, state FROM view_filters ORDER BY view`
	deleteAllSQL = `DELETE FROM view_filters`
)

// Storage persists one JSON encoded record per view.
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (and creates when missing) the database at dbPath.
func New(dbPath string) (*Storage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	s := &Storage{db: db, now: time.Now}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns every stored view. Rows naming unknown views are skipped.
func (s *Storage) Load(ctx context.Context) (filters.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load: %w", err)
	}
	defer rows.Close()

	snap := filters.Snapshot{}
	for rows.Next() {
		var name, payload string
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan: %w", err)
		}
		view, err := filters.ParseView(name)
		if err != nil {
			colors.Warning(fmt.Sprintf("sqlite storage: skipping unknown view %q", name))
			continue
		}
		var state filters.State
		if err := json.Unmarshal([]byte(payload), &state); err != nil {
			return nil, fmt.Errorf("sqlite storage: decode %s: %w", view, err)
		}
		snap[view] = state
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: load: %w", err)
	}
	return snap, nil
}

// Save upserts the record of view.
func (s *Storage) Save(ctx context.Context, view filters.View, state filters.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sqlite storage: encode %s: %w", view, err)
	}
	updatedAt := s.now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, upsertSQL, view.String(), string(payload), updatedAt); err != nil {
		return fmt.Errorf("sqlite storage: save %s: %w", view, err)
	}
	return nil
}

// Clear deletes every stored view.
func (s *Storage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("sqlite storage: clear: %w", err)
	}
	return nil
}
