package coordinator

import (
	"fieldplot/pkg/geo"
	"fieldplot/pkg/plotstore"
)

// ClickHandler receives raw map clicks.
type ClickHandler func(geo.LngLat)

// MapRenderer is the interactive map. The click handler is only registered while drawing.
type MapRenderer interface {
	RenderLayers(Layers)
	OnClick(ClickHandler)
	RemoveClickHandler()
}

type PlotLayer struct {
	ID   string
	Name string
	Ring []geo.LngLat
}

// Marker is a removable vertex handle; Index is its position in the draft.
type Marker struct {
	Index int
	At    geo.LngLat
}

type Layers struct {
	// Primary is the selected plot; the camera fits FitBounds when set.
	Primary   *PlotLayer
	FitBounds *geo.Bounds
	Secondary []PlotLayer
	Preview   []geo.LngLat
	Markers   []Marker
}

// BuildLayers derives the map layers from the store and the drawing preview.
func BuildLayers(snap plotstore.Snapshot, draft []geo.LngLat, preview []geo.LngLat) Layers {
	var l Layers
	sel, hasSel := snap.SelectedPlot()
	for _, p := range snap.Plots {
		layer := PlotLayer{ID: p.ID, Name: p.Name, Ring: p.Geometry.Ring()}
		if hasSel && p.ID == sel.ID {
			l.Primary = &layer
			if b, ok := geo.BoundsOf(layer.Ring); ok {
				l.FitBounds = &b
			}
			continue
		}
		l.Secondary = append(l.Secondary, layer)
	}
	l.Preview = preview
	for i, v := range draft {
		l.Markers = append(l.Markers, Marker{Index: i, At: v})
	}
	return l
}

type nopRenderer struct{}

func (nopRenderer) RenderLayers(Layers) {}
func (nopRenderer) OnClick(ClickHandler) {}
func (nopRenderer) RemoveClickHandler() {}
