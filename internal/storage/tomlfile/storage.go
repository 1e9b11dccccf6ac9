// Package tomlfile stores filter state as a human editable TOML document.
package tomlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/pelletier/go-toml/v2"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Storage keeps every view in one TOML file, one table per view.
type Storage struct {
	mu   sync.Mutex
	path string
}

// New returns a storage writing to path. The file is created on first Save.
func New(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("toml storage: file path cannot be empty")
	}
	return &Storage{path: path}, nil
}

// Path returns the backing file.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty snapshot.
func (s *Storage) Load(ctx context.Context) (filters.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	snap := filters.Snapshot{}
	for name, state := range doc {
		view, err := filters.ParseView(name)
		if err != nil {
			colors.Warning(fmt.Sprintf("toml storage: skipping unknown view %q", name))
			continue
		}
		snap[view] = state
	}
	return snap, nil
}

// Save rewrites the document with view replaced.
func (s *Storage) Save(ctx context.Context, view filters.View, state filters.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[view.String()] = state.Clone()
	return s.write(doc)
}

// Clear removes the file.
func (s *Storage) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("toml storage: remove %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) read() (map[string]filters.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]filters.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toml storage: read %s: %w", s.path, err)
	}

	doc := map[string]filters.State{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("toml storage: parse %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the file through a temporary sibling so readers never see
// a partial document.
func (s *Storage) write(doc map[string]filters.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("toml storage: create directory: %w", err)
	}

	data, err := encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("toml storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("toml storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("toml storage: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("toml storage: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("toml storage: replace %s: %w", s.path, err)
	}
	return nil
}

func encode(doc map[string]filters.State) ([]byte, error) {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Saved table filters, one table per view.\n")
	for _, name := range names {
		body, err := toml.Marshal(doc[name])
		if err != nil {
			return nil, fmt.Errorf("toml storage: encode %s: %w", name, err)
		}
		fmt.Fprintf(&b, "\n[%s]\n", name)
		b.Write(body)
	}
	return []byte(b.String()), nil
}
