// Package report renders a plot's fertigation log as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"fieldplot/entities"
)

const (
	LogSheet    = "Fertigation"
	TotalsSheet = "Totals"
)

var logHeader = []any{"Date", "Fertilizer", "Quantity", "Unit", "Notes"}

// WriteFertigationLog writes one row per event in the given order, then a
// per-unit quantity total sheet.
func WriteFertigationLog(w io.Writer, plot entities.FieldPlot, events []entities.FertigationEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LogSheet); err != nil {
		return err
	}
	crop := ""
	if plot.CropType != nil {
		crop = *plot.CropType
	}
	if err := f.SetSheetRow(LogSheet, "A1", &[]any{"Plot", plot.Name, "Crop", crop}); err != nil {
		return err
	}
	if err := f.SetSheetRow(LogSheet, "A3", &logHeader); err != nil {
		return err
	}

	totals := map[entities.FertigationUnit]float64{}
	for i, e := range events {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		row := []any{e.Date.Format("2006-01-02"), e.FertilizerName, e.Quantity, string(e.Unit), notes}
		if err := f.SetSheetRow(LogSheet, fmt.Sprintf("A%d", i+4), &row); err != nil {
			return err
		}
		totals[e.Unit] += e.Quantity
	}
	if err := f.SetColWidth(LogSheet, "A", "B", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(LogSheet, "E", "E", 40); err != nil {
		return err
	}

	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(TotalsSheet, "A1", &[]any{"Unit", "Total quantity", "Events"}); err != nil {
		return err
	}
	counts := map[entities.FertigationUnit]int{}
	for _, e := range events {
		counts[e.Unit]++
	}
	units := make([]string, 0, len(totals))
	for u := range totals {
		units = append(units, string(u))
	}
	sort.Strings(units)
	for i, u := range units {
		unit := entities.FertigationUnit(u)
		if err := f.SetSheetRow(TotalsSheet, fmt.Sprintf("A%d", i+2), &[]any{u, totals[unit], counts[unit]}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
