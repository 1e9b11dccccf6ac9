package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/ocp-advisor/filterstate/internal/logging"
	"github.com/ocp-advisor/filterstate/internal/storage"
)

// ViewSummary describes one view for listings.
type ViewSummary struct {
	View     filters.View `json:"view" toml:"view"`
	Modified bool         `json:"modified" toml:"modified"`
}

// FiltersService coordinates the in-memory store with persistent storage.
//
// Mutations hold writeMu from the store swap until storage has accepted the
// record (or the swap was rolled back), so the last write to reach memory is
// also the last write to reach storage.
type FiltersService struct {
	writeMu sync.Mutex
	store   *filters.Store
	storage storage.Storage
	logger  logging.Logger
}

// NewFiltersService creates a service and restores the persisted snapshot
// into store. A nil logger disables logging.
func NewFiltersService(ctx context.Context, store *filters.Store, st storage.Storage, logger logging.Logger) (*FiltersService, error) {
	if store == nil {
		panic("NewFiltersService: store dependency cannot be nil")
	}
	if st == nil {
		panic("NewFiltersService: storage dependency cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	snap, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("filters: load persisted state: %w", err)
	}
	if err := store.Restore(snap); err != nil {
		return nil, fmt.Errorf("filters: restore persisted state: %w", err)
	}
	logger.Debug("restored filter state", "views", len(snap))

	return &FiltersService{store: store, storage: st, logger: logger}, nil
}

// Views returns every known view in a stable order.
func (s *FiltersService) Views() []filters.View {
	return filters.Views()
}

// Summaries reports, per view, whether the current record differs from its default.
func (s *FiltersService) Summaries() ([]ViewSummary, error) {
	views := filters.Views()
	out := make([]ViewSummary, 0, len(views))
	for _, v := range views {
		current, err := s.store.Get(v)
		if err != nil {
			return nil, err
		}
		def, err := filters.Default(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ViewSummary{View: v, Modified: !current.Equal(def)})
	}
	return out, nil
}

// Show returns the current record of a view.
func (s *FiltersService) Show(view string) (filters.State, error) {
	v, err := filters.ParseView(view)
	if err != nil {
		return filters.State{}, err
	}
	return s.store.Get(v)
}

// Default returns the default record of a view.
func (s *FiltersService) Default(view string) (filters.State, error) {
	v, err := filters.ParseView(view)
	if err != nil {
		return filters.State{}, err
	}
	return filters.Default(v)
}

// Replace swaps the record of a view and persists it. When persisting fails
// the previous record is put back.
func (s *FiltersService) Replace(ctx context.Context, view string, next filters.State) (filters.State, error) {
	v, err := filters.ParseView(view)
	if err != nil {
		return filters.State{}, err
	}
	next = next.Clone()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous, err := s.store.Get(v)
	if err != nil {
		return filters.State{}, err
	}
	if err := s.store.Replace(v, next); err != nil {
		return filters.State{}, err
	}
	if err := s.persist(ctx, v, next, previous); err != nil {
		return filters.State{}, err
	}

	s.logger.Info("filter state replaced", "view", v.String(), "operation", "replace")
	return next.Clone(), nil
}

// Reset rebuilds a view from its defaults, keeping the sort and (when a limit
// is set) paging of current. A nil current uses the stored record.
func (s *FiltersService) Reset(ctx context.Context, view string, current *filters.State) (filters.State, error) {
	v, err := filters.ParseView(view)
	if err != nil {
		return filters.State{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.reset(ctx, v, current)
}

// reset must be called with writeMu held.
func (s *FiltersService) reset(ctx context.Context, v filters.View, current *filters.State) (filters.State, error) {
	previous, err := s.store.Get(v)
	if err != nil {
		return filters.State{}, err
	}
	base := previous
	if current != nil {
		base = current.Clone()
	}

	result, err := s.store.Reset(v, base)
	if err != nil {
		return filters.State{}, err
	}
	if err := s.persist(ctx, v, result, previous); err != nil {
		return filters.State{}, err
	}

	s.logger.Info("filter state reset", "view", v.String(), "operation", "reset")
	return result, nil
}

// ResetAll resets every view from its own current record.
func (s *FiltersService) ResetAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var errs []error
	for _, v := range filters.Views() {
		if _, err := s.reset(ctx, v, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Purge forgets persisted state and puts every view back to its default.
func (s *FiltersService) Purge(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("filters: purge: %w", err)
	}
	if err := s.store.Restore(filters.Defaults()); err != nil {
		return err
	}
	s.logger.Info("filter state purged", "operation", "purge")
	return nil
}

// persist saves state, the record just swapped in. On failure the view is
// put back to previous. Must be called with writeMu held.
func (s *FiltersService) persist(ctx context.Context, v filters.View, state, previous filters.State) error {
	if err := s.storage.Save(ctx, v, state); err != nil {
		if rbErr := s.store.Replace(v, previous); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		s.logger.Error("failed to persist filter state", "view", v.String(), "error", err)
		return fmt.Errorf("filters: persist %s: %w", v, err)
	}
	return nil
}
