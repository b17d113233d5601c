package plotclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
)

var tri = []geo.LngLat{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)}

func TestMemoryRepository_Plots(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepository()

	_, err := m.CreatePlot(ctx, "Pair", tri[:2], nil)
	assert.True(t, IsValidation(err))

	p, err := m.CreatePlot(ctx, " A ", tri, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
	assert.Len(t, p.Geometry.Ring(), 4)

	maize := "Maize"
	up, err := m.UpdatePlot(ctx, p.ID, PlotPatch{CropType: &maize})
	require.NoError(t, err)
	assert.Equal(t, p.Geometry, up.Geometry)
	assert.Equal(t, "Maize", *up.CropType)

	_, err = m.UpdatePlot(ctx, p.ID, PlotPatch{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nothing to update", ve.Detail())

	require.NoError(t, m.DeletePlot(ctx, p.ID))
	assert.True(t, IsNotFound(m.DeletePlot(ctx, p.ID)))
	_, err = m.UpdatePlot(ctx, p.ID, PlotPatch{CropType: &maize})
	assert.True(t, IsNotFound(err))
}

func TestMemoryRepository_EventsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepository()
	p, err := m.CreatePlot(ctx, "A", tri, nil)
	require.NoError(t, err)

	for i, d := range []int{3, 9, 1} {
		_, err := m.CreateFertigationEvent(ctx, p.ID, entities.FertigationInput{
			Date:           time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC),
			FertilizerName: []string{"a", "b", "c"}[i],
			Quantity:       1,
			Unit:           entities.UnitKg,
		})
		require.NoError(t, err)
	}
	events, err := m.ListFertigationEvents(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "b", events[0].FertilizerName)
	assert.Equal(t, "c", events[2].FertilizerName)

	_, err = m.CreateFertigationEvent(ctx, p.ID, entities.FertigationInput{Date: time.Now(), FertilizerName: "x", Quantity: -1, Unit: entities.UnitKg})
	assert.True(t, IsValidation(err))
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryRepository().ListPlots(ctx)
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, err, context.Canceled)
}
