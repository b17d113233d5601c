package plotstore

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/plotclient"
	"fieldplot/pkg/plotclient/plotclienttest"
)

var tri = []geo.LngLat{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)}

func loaded(t *testing.T, plots ...entities.FieldPlot) (*Store, *plotclienttest.MockRepository) {
	t.Helper()
	repo := new(plotclienttest.MockRepository)
	repo.On("ListPlots", mock.Anything).Return(plots, nil).Once()
	s := New(repo, nil)
	require.NoError(t, s.Load(context.Background()))
	return s, repo
}

func TestLoad_ReplacesAndDropsDanglingSelection(t *testing.T) {
	a, b := plotclienttest.Plot("a", "A"), plotclienttest.Plot("b", "B")
	s, repo := loaded(t, a, b)
	require.NoError(t, s.Select("a"))

	repo.On("ListPlots", mock.Anything).Return([]entities.FieldPlot{b}, nil).Once()
	require.NoError(t, s.Load(context.Background()))

	snap := s.Snapshot()
	assert.Len(t, snap.Plots, 1)
	_, ok := snap.SelectedPlot()
	assert.False(t, ok)
	assert.Empty(t, snap.SelectedID)
}

func TestLoad_FailureKeepsState(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))

	repo.On("ListPlots", mock.Anything).Return(nil, &plotclient.NetworkError{Msg: "down"}).Once()
	err := s.Load(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Plots, 1)
	assert.Equal(t, "a", snap.SelectedID)
	assert.ErrorAs(t, snap.Err, new(*plotclient.NetworkError))

	s.ClearError()
	assert.NoError(t, s.Snapshot().Err)
}

func TestCreate_PrependsAndSelects(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"))
	created := plotclienttest.Plot("n", "New")
	repo.On("CreatePlot", mock.Anything, "New", tri, (*string)(nil)).Return(&created, nil)

	var seen []Snapshot
	s.Subscribe(func(_, next Snapshot) { seen = append(seen, next) })

	_, err := s.Create(context.Background(), "New", tri, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "n", snap.Plots[0].ID)
	assert.Equal(t, "a", snap.Plots[1].ID)
	sel, ok := snap.SelectedPlot()
	require.True(t, ok)
	assert.Equal(t, "New", sel.Name)

	// one notification, already selected
	require.Len(t, seen, 1)
	assert.Equal(t, "n", seen[0].SelectedID)
	assert.Equal(t, "n", seen[0].Plots[0].ID)
}

func TestCreate_FailureIsAllOrNothing(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))
	repo.On("CreatePlot", mock.Anything, "B", tri, (*string)(nil)).Return(nil, &plotclient.ValidationError{Msg: "bad ring"})

	before := s.Snapshot()
	_, err := s.Create(context.Background(), "B", tri, nil)
	assert.True(t, plotclient.IsValidation(err))

	after := s.Snapshot()
	assert.Equal(t, before.Plots, after.Plots)
	assert.Equal(t, before.SelectedID, after.SelectedID)
	assert.Error(t, after.Err)
}

func TestUpdate_InPlaceAndDroppedWhenGone(t *testing.T) {
	a, b := plotclienttest.Plot("a", "A"), plotclienttest.Plot("b", "B")
	s, repo := loaded(t, a, b)

	wheat := "Wheat"
	patch := plotclient.PlotPatch{CropType: &wheat}
	upd := b
	upd.CropType = &wheat
	repo.On("UpdatePlot", mock.Anything, "b", patch).Return(&upd, nil)

	got, ok, err := s.Update(context.Background(), "b", patch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Wheat", *got.CropType)
	snap := s.Snapshot()
	assert.Equal(t, "b", snap.Plots[1].ID)
	assert.Equal(t, "Wheat", *snap.Plots[1].CropType)
	assert.Nil(t, a.CropType)

	ghost := plotclienttest.Plot("g", "Ghost")
	repo.On("UpdatePlot", mock.Anything, "g", patch).Return(&ghost, nil)
	_, ok, err = s.Update(context.Background(), "g", patch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().Plots, 2)
}

func TestDelete_ClearsSelection(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))
	repo.On("DeletePlot", mock.Anything, "a").Return(nil)

	require.NoError(t, s.Delete(context.Background(), "a"))

	snap := s.Snapshot()
	_, ok := snap.SelectedPlot()
	assert.False(t, ok)
	assert.False(t, snap.HasPlots())
}

func TestDelete_NotFoundIsSuccess(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"), plotclienttest.Plot("b", "B"))
	require.NoError(t, s.Select("b"))
	repo.On("DeletePlot", mock.Anything, "a").Return(&plotclient.NotFoundError{Msg: "not found"})

	require.NoError(t, s.Delete(context.Background(), "a"))
	snap := s.Snapshot()
	assert.Len(t, snap.Plots, 1)
	assert.Equal(t, "b", snap.SelectedID)
}

func TestDelete_FailureKeepsPlot(t *testing.T) {
	s, repo := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))
	repo.On("DeletePlot", mock.Anything, "a").Return(&plotclient.AuthError{Msg: "expired"})

	err := s.Delete(context.Background(), "a")
	assert.True(t, plotclient.IsAuth(err))
	snap := s.Snapshot()
	assert.Len(t, snap.Plots, 1)
	assert.Equal(t, "a", snap.SelectedID)
}

func TestSelect_UnknownLeavesSelection(t *testing.T) {
	s, _ := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))

	assert.ErrorIs(t, s.Select("zzz"), ErrPlotNotFound)
	assert.Equal(t, "a", s.Snapshot().SelectedID)

	s.ClearSelection()
	assert.Empty(t, s.Snapshot().SelectedID)
}

func TestPlotByName(t *testing.T) {
	s, _ := loaded(t, plotclienttest.Plot("a", "North Field"))
	p, ok := s.Snapshot().PlotByName("north field ")
	require.True(t, ok)
	assert.Equal(t, "a", p.ID)
	_, ok = s.Snapshot().PlotByName("  ")
	assert.False(t, ok)
}

// Random create/delete/select sequences never leave a dangling selection.
func TestSelectionInvariant(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	s := New(plotclient.NewMemoryRepository(), nil)
	require.NoError(t, s.Load(ctx))

	check := func(snap Snapshot) {
		if snap.SelectedID == "" {
			return
		}
		_, ok := snap.PlotByID(snap.SelectedID)
		require.True(t, ok, "selection %q dangles", snap.SelectedID)
	}
	s.Subscribe(func(_, next Snapshot) { check(next) })

	for i := 0; i < 300; i++ {
		plots := s.Snapshot().Plots
		switch op := rng.Intn(4); {
		case op == 0 || len(plots) == 0:
			_, err := s.Create(ctx, "p", tri, nil)
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, s.Delete(ctx, plots[rng.Intn(len(plots))].ID))
		case op == 2:
			require.NoError(t, s.Select(plots[rng.Intn(len(plots))].ID))
		default:
			// deleting something already gone
			require.NoError(t, s.Delete(ctx, "missing"))
		}
		check(s.Snapshot())
	}
}

func TestReset(t *testing.T) {
	s, _ := loaded(t, plotclienttest.Plot("a", "A"))
	require.NoError(t, s.Select("a"))
	s.Reset()
	snap := s.Snapshot()
	assert.False(t, snap.HasPlots())
	assert.Empty(t, snap.SelectedID)
}
