package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFertigationInputValidate(t *testing.T) {
	valid := FertigationInput{
		Date:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		FertilizerName: "Urea",
		Quantity:       12.5,
		Unit:           UnitKgPerHa,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*FertigationInput)
		want   string
	}{
		{"missing fertilizer", func(in *FertigationInput) { in.FertilizerName = "" }, "fertilizer_name is required"},
		{"zero quantity", func(in *FertigationInput) { in.Quantity = 0 }, "quantity must be greater than 0"},
		{"negative quantity", func(in *FertigationInput) { in.Quantity = -3 }, "quantity must be greater than 0"},
		{"unknown unit", func(in *FertigationInput) { in.Unit = "t" }, "unit must be one of: kg/ha, L/ha, kg, L"},
		{"missing date", func(in *FertigationInput) { in.Date = time.Time{} }, "date is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestFieldPlotUpdateEmpty(t *testing.T) {
	assert.True(t, FieldPlotUpdate{}.Empty())
	crop := "Wheat"
	assert.False(t, FieldPlotUpdate{CropType: &crop}.Empty())
}
