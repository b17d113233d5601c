package coordinator

import "fieldplot/pkg/plotstore"

// Features are the plot-scoped controls the dashboard may enable.
type Features struct {
	CropType       bool
	Fertigation    bool
	DateNavigation bool
}

// FeaturesOf gates every plot-scoped feature on a resolvable selection.
func FeaturesOf(snap plotstore.Snapshot) Features {
	_, ok := snap.SelectedPlot()
	return Features{CropType: ok, Fertigation: ok, DateNavigation: ok}
}
