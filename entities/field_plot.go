package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldplot/pkg/geo"
)

type FieldPlot struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Name      string      `gorm:"not null" json:"name"`
	Geometry  geo.Polygon `gorm:"serializer:json" json:"geometry"`
	CropType  *string     `json:"crop_type,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (p *FieldPlot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FieldPlotCreate is the create payload; Coordinates is the open ring as drawn.
type FieldPlotCreate struct {
	Name        string       `json:"name"`
	Coordinates []geo.LngLat `json:"coordinates"`
	CropType    *string      `json:"crop_type,omitempty"`
}

// FieldPlotUpdate is a partial update: nil fields are left untouched.
type FieldPlotUpdate struct {
	Name        *string      `json:"name,omitempty"`
	Coordinates []geo.LngLat `json:"coordinates,omitempty"`
	CropType    *string      `json:"crop_type,omitempty"`
}

func (u FieldPlotUpdate) Empty() bool {
	return u.Name == nil && u.Coordinates == nil && u.CropType == nil
}
