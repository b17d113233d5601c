package plotclient

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
)

// MemoryRepository is an in-process Repository with the same validation as the API server.
// It backs offline runs of plotctl and tests.
type MemoryRepository struct {
	mu     sync.Mutex
	plots  map[string]entities.FieldPlot
	events map[string]entities.FertigationEvent
	now    func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(seed ...entities.FieldPlot) *MemoryRepository {
	m := &MemoryRepository{
		plots:  make(map[string]entities.FieldPlot),
		events: make(map[string]entities.FertigationEvent),
		now:    time.Now,
	}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.plots[p.ID] = p
	}
	return m
}

func (m *MemoryRepository) ListPlots(ctx context.Context) ([]entities.FieldPlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.FieldPlot, 0, len(m.plots))
	for _, p := range m.plots {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) CreatePlot(ctx context.Context, name string, vertices []geo.LngLat, cropType *string) (*entities.FieldPlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	name, err := entities.PlotName(name)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	poly, err := entities.PlotGeometry(vertices)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	p := entities.FieldPlot{ID: uuid.NewString(), Name: name, Geometry: poly, CropType: entities.CropTypeLabel(cropType), CreatedAt: now, UpdatedAt: now}
	m.plots[p.ID] = p
	return &p, nil
}

func (m *MemoryRepository) UpdatePlot(ctx context.Context, id string, patch PlotPatch) (*entities.FieldPlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plots[id]
	if !ok {
		return nil, &NotFoundError{Msg: "not found"}
	}
	if err := patch.ApplyTo(&p); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	p.UpdatedAt = m.now()
	m.plots[id] = p
	return &p, nil
}

func (m *MemoryRepository) DeletePlot(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return &NetworkError{Msg: "request failed", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plots[id]; !ok {
		return &NotFoundError{Msg: "not found"}
	}
	delete(m.plots, id)
	for eid, e := range m.events {
		if e.PlotID == id {
			delete(m.events, eid)
		}
	}
	return nil
}

func (m *MemoryRepository) ListFertigationEvents(ctx context.Context, plotID string) ([]entities.FertigationEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plots[plotID]; !ok {
		return nil, &NotFoundError{Msg: "not found"}
	}
	var out []entities.FertigationEvent
	for _, e := range m.events {
		if e.PlotID == plotID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) CreateFertigationEvent(ctx context.Context, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plots[plotID]; !ok {
		return nil, &NotFoundError{Msg: "not found"}
	}
	now := m.now()
	e := entities.FertigationEvent{ID: uuid.NewString(), PlotID: plotID, CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(&e)
	m.events[e.ID] = e
	return &e, nil
}

func (m *MemoryRepository) UpdateFertigationEvent(ctx context.Context, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Msg: "request failed", Err: err}
	}
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return nil, &NotFoundError{Msg: "not found"}
	}
	in.ApplyTo(&e)
	e.UpdatedAt = m.now()
	m.events[eventID] = e
	return &e, nil
}

func (m *MemoryRepository) DeleteFertigationEvent(ctx context.Context, eventID string) error {
	if err := ctx.Err(); err != nil {
		return &NetworkError{Msg: "request failed", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[eventID]; !ok {
		return &NotFoundError{Msg: "not found"}
	}
	delete(m.events, eventID)
	return nil
}
