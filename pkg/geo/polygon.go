// Package geo holds the plot geometry primitives: lng/lat pairs, open vertex
// rings as drawn on the map, and the closed GeoJSON polygon used on the wire.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// MinVertices is the smallest number of distinct vertices a plot polygon may have.
const MinVertices = 3

var (
	ErrTooFewVertices = errors.New("polygon needs at least 3 distinct vertices")
	ErrOutOfRange     = errors.New("coordinate out of range")
	ErrNotPolygon     = errors.New("geometry is not a single-ring polygon")
)

// LngLat is a [lng, lat] pair, encoded as a two element JSON array.
type LngLat [2]float64

func Pt(lng, lat float64) LngLat { return LngLat{lng, lat} }

func (p LngLat) Lng() float64 { return p[0] }
func (p LngLat) Lat() float64 { return p[1] }

func (p LngLat) valid() bool {
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
		return false
	}
	return p[0] >= -180 && p[0] <= 180 && p[1] >= -90 && p[1] <= 90
}

// Polygon is a GeoJSON Polygon restricted to one explicitly closed outer ring.
type Polygon struct {
	Type        string     `json:"type"`
	Coordinates [][]LngLat `json:"coordinates"`
}

// NewPolygon closes the open vertex ring and wraps it as a Polygon.
func NewPolygon(vertices []LngLat) (Polygon, error) {
	if DistinctCount(vertices) < MinVertices {
		return Polygon{}, ErrTooFewVertices
	}
	for i, v := range vertices {
		if !v.valid() {
			return Polygon{}, fmt.Errorf("vertex %d (%v): %w", i, v, ErrOutOfRange)
		}
	}
	return Polygon{Type: "Polygon", Coordinates: [][]LngLat{CloseRing(vertices)}}, nil
}

// Ring returns the closed outer ring, or nil for an empty polygon.
func (p Polygon) Ring() []LngLat {
	if len(p.Coordinates) == 0 {
		return nil
	}
	return p.Coordinates[0]
}

// Vertices returns the outer ring without its closing vertex.
func (p Polygon) Vertices() []LngLat { return OpenRing(p.Ring()) }

// Validate checks the shape a server accepts: one closed ring with enough distinct vertices.
func (p Polygon) Validate() error {
	if p.Type != "Polygon" || len(p.Coordinates) != 1 {
		return ErrNotPolygon
	}
	ring := p.Coordinates[0]
	if len(ring) < 2 || ring[0] != ring[len(ring)-1] {
		return ErrNotPolygon
	}
	if DistinctCount(ring) < MinVertices {
		return ErrTooFewVertices
	}
	return nil
}

// CloseRing returns a copy of vertices with the first vertex repeated at the end.
// Already closed input is copied unchanged.
func CloseRing(vertices []LngLat) []LngLat {
	if len(vertices) == 0 {
		return nil
	}
	out := make([]LngLat, len(vertices), len(vertices)+1)
	copy(out, vertices)
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		return out
	}
	return append(out, vertices[0])
}

// OpenRing drops the closing vertex of a closed ring.
func OpenRing(ring []LngLat) []LngLat {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make([]LngLat, n)
	copy(out, ring[:n])
	return out
}

// DistinctCount counts unique coordinates.
func DistinctCount(vertices []LngLat) int {
	seen := make(map[LngLat]struct{}, len(vertices))
	for _, v := range vertices {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Bounds is an axis-aligned lng/lat box.
type Bounds struct {
	SouthWest LngLat `json:"sw"`
	NorthEast LngLat `json:"ne"`
}

// BoundsOf returns the box enclosing every vertex; false when there are none.
func BoundsOf(vertices []LngLat) (Bounds, bool) {
	if len(vertices) == 0 {
		return Bounds{}, false
	}
	b := Bounds{SouthWest: vertices[0], NorthEast: vertices[0]}
	for _, v := range vertices[1:] {
		b.SouthWest[0] = math.Min(b.SouthWest[0], v[0])
		b.SouthWest[1] = math.Min(b.SouthWest[1], v[1])
		b.NorthEast[0] = math.Max(b.NorthEast[0], v[0])
		b.NorthEast[1] = math.Max(b.NorthEast[1], v[1])
	}
	return b, true
}
