package plotstore

import (
	"strings"

	"fieldplot/entities"
)

// Snapshot is a read-only view of the store. Plots is shared; do not mutate it.
type Snapshot struct {
	Plots      []entities.FieldPlot
	SelectedID string
	Err        error
}

func (s Snapshot) HasPlots() bool { return len(s.Plots) > 0 }

// SelectedPlot resolves SelectedID; a dangling id reads as no selection.
func (s Snapshot) SelectedPlot() (entities.FieldPlot, bool) {
	if s.SelectedID == "" {
		return entities.FieldPlot{}, false
	}
	return s.PlotByID(s.SelectedID)
}

func (s Snapshot) PlotByID(id string) (entities.FieldPlot, bool) {
	if i := indexOf(s.Plots, id); i >= 0 {
		return s.Plots[i], true
	}
	return entities.FieldPlot{}, false
}

// PlotByName matches trimmed names case-insensitively.
func (s Snapshot) PlotByName(name string) (entities.FieldPlot, bool) {
	key := strings.TrimSpace(name)
	if key == "" {
		return entities.FieldPlot{}, false
	}
	for _, p := range s.Plots {
		if strings.EqualFold(strings.TrimSpace(p.Name), key) {
			return p, true
		}
	}
	return entities.FieldPlot{}, false
}

func indexOf(plots []entities.FieldPlot, id string) int {
	for i := range plots {
		if plots[i].ID == id {
			return i
		}
	}
	return -1
}
