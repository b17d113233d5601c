package service

import (
	"context"

	"fieldplot/entities"
)

// FertigationService scopes every event operation to plots owned by uid.
type FertigationService interface {
	Create(ctx context.Context, uid, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error)
	List(ctx context.Context, uid, plotID string) ([]entities.FertigationEvent, error)
	Update(ctx context.Context, uid, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error)
	Delete(ctx context.Context, uid, eventID string) error
}
