package service

import (
	"context"
	"errors"

	"fieldplot/entities"
)

var ErrNotFound = errors.New("not found")

// ValidationError is a rejected payload; controllers answer 422 with its message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }

type FieldService interface {
	Create(ctx context.Context, uid string, in entities.FieldPlotCreate) (*entities.FieldPlot, error)
	List(ctx context.Context, uid string) ([]entities.FieldPlot, error)
	Get(ctx context.Context, id, uid string) (*entities.FieldPlot, error)
	Update(ctx context.Context, id, uid string, in entities.FieldPlotUpdate) (*entities.FieldPlot, error)
	Delete(ctx context.Context, id, uid string) error
}
