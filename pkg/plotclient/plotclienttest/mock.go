// Package plotclienttest provides a testify mock of plotclient.Repository.
package plotclienttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/plotclient"
)

type MockRepository struct {
	mock.Mock
}

var _ plotclient.Repository = (*MockRepository)(nil)

func (m *MockRepository) ListPlots(ctx context.Context) ([]entities.FieldPlot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FieldPlot), args.Error(1)
}

func (m *MockRepository) CreatePlot(ctx context.Context, name string, vertices []geo.LngLat, cropType *string) (*entities.FieldPlot, error) {
	args := m.Called(ctx, name, vertices, cropType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FieldPlot), args.Error(1)
}

func (m *MockRepository) UpdatePlot(ctx context.Context, id string, patch plotclient.PlotPatch) (*entities.FieldPlot, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FieldPlot), args.Error(1)
}

func (m *MockRepository) DeletePlot(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ListFertigationEvents(ctx context.Context, plotID string) ([]entities.FertigationEvent, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FertigationEvent), args.Error(1)
}

func (m *MockRepository) CreateFertigationEvent(ctx context.Context, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	args := m.Called(ctx, plotID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FertigationEvent), args.Error(1)
}

func (m *MockRepository) UpdateFertigationEvent(ctx context.Context, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	args := m.Called(ctx, eventID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FertigationEvent), args.Error(1)
}

func (m *MockRepository) DeleteFertigationEvent(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

// Plot builds a plot fixture with a closed triangle.
func Plot(id, name string) entities.FieldPlot {
	poly, _ := geo.NewPolygon([]geo.LngLat{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)})
	return entities.FieldPlot{ID: id, Name: name, Geometry: poly}
}
