package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FertigationUnit string

const (
	UnitKgPerHa    FertigationUnit = "kg/ha"
	UnitLitrePerHa FertigationUnit = "L/ha"
	UnitKg         FertigationUnit = "kg"
	UnitLitre      FertigationUnit = "L"
)

type FertigationEvent struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	PlotID         string          `gorm:"index;not null" json:"plot_id"`
	Date           time.Time       `gorm:"index" json:"date"`
	FertilizerName string          `json:"fertilizer_name"`
	Quantity       float64         `json:"quantity"`
	Unit           FertigationUnit `json:"unit"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (e *FertigationEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// FertigationInput is what the fertigation form submits for both create and update.
type FertigationInput struct {
	Date           time.Time       `json:"date" validate:"required"`
	FertilizerName string          `json:"fertilizer_name" validate:"required,max=200"`
	Quantity       float64         `json:"quantity" validate:"gt=0"`
	Unit           FertigationUnit `json:"unit" validate:"required,oneof=kg/ha L/ha kg L"`
	Notes          *string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
