package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fieldplot/entities"
)

func TestWriteFertigationLog(t *testing.T) {
	crop := "Wheat"
	note := "after irrigation"
	plot := entities.FieldPlot{ID: "p1", Name: "North Field", CropType: &crop}
	events := []entities.FertigationEvent{
		{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), FertilizerName: "Urea", Quantity: 40, Unit: entities.UnitKgPerHa, Notes: &note},
		{Date: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), FertilizerName: "MAP", Quantity: 25.5, Unit: entities.UnitKgPerHa},
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), FertilizerName: "Humic acid", Quantity: 3, Unit: entities.UnitLitrePerHa},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFertigationLog(&buf, plot, events))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	get := func(sheet, cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "North Field", get(LogSheet, "B1"))
	assert.Equal(t, "Wheat", get(LogSheet, "D1"))
	assert.Equal(t, "Date", get(LogSheet, "A3"))
	assert.Equal(t, "2025-04-02", get(LogSheet, "A4"))
	assert.Equal(t, "Urea", get(LogSheet, "B4"))
	assert.Equal(t, "after irrigation", get(LogSheet, "E4"))
	assert.Equal(t, "Humic acid", get(LogSheet, "B6"))

	assert.Equal(t, "L/ha", get(TotalsSheet, "A2"))
	assert.Equal(t, "3", get(TotalsSheet, "B2"))
	assert.Equal(t, "kg/ha", get(TotalsSheet, "A3"))
	assert.Equal(t, "65.5", get(TotalsSheet, "B3"))
	assert.Equal(t, "2", get(TotalsSheet, "C3"))
}

func TestWriteFertigationLogEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFertigationLog(&buf, entities.FieldPlot{Name: "Empty"}, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{LogSheet, TotalsSheet}, f.GetSheetList())
}
