package repository

import (
	"context"

	"fieldplot/entities"
)

type FieldRepository interface {
	Create(ctx context.Context, p *entities.FieldPlot) error
	ListByUser(ctx context.Context, uid string) ([]entities.FieldPlot, error)
	FindByID(ctx context.Context, id, uid string) (*entities.FieldPlot, error)
	Save(ctx context.Context, p *entities.FieldPlot) error
	// Delete removes the plot and its fertigation events; gorm.ErrRecordNotFound when absent.
	Delete(ctx context.Context, id, uid string) error
}
