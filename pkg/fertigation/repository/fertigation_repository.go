package repository

import (
	"context"

	"fieldplot/entities"
)

type FertigationRepository interface {
	Create(ctx context.Context, e *entities.FertigationEvent) error
	// ListByPlot returns the plot's events newest first.
	ListByPlot(ctx context.Context, plotID string) ([]entities.FertigationEvent, error)
	FindByID(ctx context.Context, id string) (*entities.FertigationEvent, error)
	Save(ctx context.Context, e *entities.FertigationEvent) error
	Delete(ctx context.Context, id string) error
}
