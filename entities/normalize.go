package entities

import (
	"errors"
	"fmt"
	"strings"

	"fieldplot/pkg/geo"
)

// ErrNothingToUpdate is returned for a plot update with no fields set.
var ErrNothingToUpdate = errors.New("nothing to update")

// PlotName trims a plot name; blank is rejected.
func PlotName(name string) (string, error) {
	v := strings.TrimSpace(name)
	if v == "" {
		return "", errors.New("name is required")
	}
	return v, nil
}

// CropTypeLabel trims an optional crop type; blank clears it.
func CropTypeLabel(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// PlotGeometry builds the stored polygon from the ring as drawn. Error text is shown to users.
func PlotGeometry(coords []geo.LngLat) (geo.Polygon, error) {
	poly, err := geo.NewPolygon(coords)
	switch {
	case errors.Is(err, geo.ErrTooFewVertices):
		return geo.Polygon{}, fmt.Errorf("coordinates must contain at least %d distinct points", geo.MinVertices)
	case err != nil:
		return geo.Polygon{}, fmt.Errorf("invalid coordinates: %v", err)
	}
	return poly, nil
}

// ApplyTo checks u and applies it to p. p is left untouched on error.
func (u FieldPlotUpdate) ApplyTo(p *FieldPlot) error {
	if u.Empty() {
		return ErrNothingToUpdate
	}
	next := *p
	if u.Name != nil {
		name, err := PlotName(*u.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if u.Coordinates != nil {
		poly, err := PlotGeometry(u.Coordinates)
		if err != nil {
			return err
		}
		next.Geometry = poly
	}
	if u.CropType != nil {
		next.CropType = CropTypeLabel(u.CropType)
	}
	*p = next
	return nil
}

// ApplyTo copies the form onto e; the date is stored in UTC.
func (in FertigationInput) ApplyTo(e *FertigationEvent) {
	e.Date = in.Date.UTC()
	e.FertilizerName = in.FertilizerName
	e.Quantity = in.Quantity
	e.Unit = in.Unit
	e.Notes = in.Notes
}
