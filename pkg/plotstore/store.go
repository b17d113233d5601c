// Package plotstore keeps the session's plot collection and the selected plot.
package plotstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/logger"
	"fieldplot/pkg/plotclient"
)

var ErrPlotNotFound = errors.New("plot not in collection")

// Observer is called after each state change with the states before and after it.
type Observer func(prev, next Snapshot)

// Store is the single source of truth for the loaded plots and the selection.
// Every mutation replaces the plots slice, so snapshots handed out stay valid.
type Store struct {
	repo plotclient.Repository
	log  *zap.Logger

	mu        sync.Mutex
	plots     []entities.FieldPlot
	selected  string
	err       error
	observers []Observer
}

func New(repo plotclient.Repository, log *zap.Logger) *Store {
	return &Store{repo: repo, log: logger.OrNop(log)}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Plots: s.plots, SelectedID: s.selected, Err: s.err}
}

// Subscribe registers fn for every later state change. Observers run on the mutating goroutine.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// mutate applies fn under the lock and notifies observers once the lock is released.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	prev := s.snapshotLocked()
	fn()
	next := s.snapshotLocked()
	obs := s.observers
	s.mu.Unlock()
	for _, o := range obs {
		o(prev, next)
	}
}

func (s *Store) fail(op string, err error) error {
	s.log.Warn("plot store operation failed", zap.String("op", op), zap.String("kind", plotclient.Kind(err)), zap.Error(err))
	s.mutate(func() { s.err = err })
	return fmt.Errorf("%s: %w", op, err)
}

// Load replaces the collection with the server's. Concurrent loads are not coalesced.
func (s *Store) Load(ctx context.Context) error {
	plots, err := s.repo.ListPlots(ctx)
	if err != nil {
		return s.fail("load plots", err)
	}
	if plots == nil {
		plots = []entities.FieldPlot{}
	}
	s.mutate(func() {
		s.plots = plots
		s.err = nil
		if indexOf(plots, s.selected) < 0 {
			s.selected = ""
		}
	})
	s.log.Debug("plots loaded", zap.Int("count", len(plots)))
	return nil
}

// Create persists a plot, then prepends and selects it in one step.
func (s *Store) Create(ctx context.Context, name string, vertices []geo.LngLat, cropType *string) (entities.FieldPlot, error) {
	p, err := s.repo.CreatePlot(ctx, name, vertices, cropType)
	if err != nil {
		return entities.FieldPlot{}, s.fail("create plot", err)
	}
	s.mutate(func() {
		next := make([]entities.FieldPlot, 0, len(s.plots)+1)
		next = append(next, *p)
		for _, q := range s.plots {
			if q.ID != p.ID {
				next = append(next, q)
			}
		}
		s.plots = next
		s.selected = p.ID
		s.err = nil
	})
	s.log.Info("plot created", zap.String("plot_id", p.ID), zap.String("name", p.Name))
	return *p, nil
}

// Update applies patch remotely and swaps the entry in place.
// If the plot left the collection meanwhile, the result is dropped and ok is false.
func (s *Store) Update(ctx context.Context, id string, patch plotclient.PlotPatch) (plot entities.FieldPlot, ok bool, err error) {
	p, err := s.repo.UpdatePlot(ctx, id, patch)
	if err != nil {
		return entities.FieldPlot{}, false, s.fail("update plot", err)
	}
	s.mutate(func() {
		i := indexOf(s.plots, id)
		if i < 0 {
			return
		}
		next := make([]entities.FieldPlot, len(s.plots))
		copy(next, s.plots)
		next[i] = *p
		s.plots = next
		s.err = nil
		ok = true
	})
	if !ok {
		s.log.Debug("update result discarded; plot no longer loaded", zap.String("plot_id", id))
	}
	return *p, ok, nil
}

// Delete removes the plot remotely and locally. A plot the server no longer has counts as deleted.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeletePlot(ctx, id); err != nil && !plotclient.IsNotFound(err) {
		return s.fail("delete plot", err)
	}
	s.mutate(func() {
		if i := indexOf(s.plots, id); i >= 0 {
			next := make([]entities.FieldPlot, 0, len(s.plots)-1)
			next = append(next, s.plots[:i]...)
			next = append(next, s.plots[i+1:]...)
			s.plots = next
		}
		if s.selected == id {
			s.selected = ""
		}
		s.err = nil
	})
	s.log.Info("plot deleted", zap.String("plot_id", id))
	return nil
}

// Select points the selection at a loaded plot.
func (s *Store) Select(id string) error {
	var err error
	s.mutate(func() {
		if indexOf(s.plots, id) < 0 {
			err = fmt.Errorf("select %q: %w", id, ErrPlotNotFound)
			return
		}
		s.selected = id
	})
	return err
}

func (s *Store) ClearSelection() {
	s.mutate(func() { s.selected = "" })
}

func (s *Store) ClearError() {
	s.mutate(func() { s.err = nil })
}

// Reset empties the store at sign-out.
func (s *Store) Reset() {
	s.mutate(func() {
		s.plots = nil
		s.selected = ""
		s.err = nil
	})
}
