package serviceImp

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldplot/entities"
	repo "fieldplot/pkg/field/repository"
	"fieldplot/pkg/field/service"
	"fieldplot/pkg/logger"
)

type fieldSvc struct {
	r   repo.FieldRepository
	log *zap.Logger
}

func NewFieldService(r repo.FieldRepository, log *zap.Logger) service.FieldService {
	return &fieldSvc{r: r, log: logger.OrNop(log)}
}

func (s *fieldSvc) Create(ctx context.Context, uid string, in entities.FieldPlotCreate) (*entities.FieldPlot, error) {
	name, err := entities.PlotName(in.Name)
	if err != nil {
		return nil, service.Invalid(err.Error())
	}
	poly, err := entities.PlotGeometry(in.Coordinates)
	if err != nil {
		return nil, service.Invalid(err.Error())
	}
	p := &entities.FieldPlot{UserID: uid, Name: name, Geometry: poly, CropType: entities.CropTypeLabel(in.CropType)}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("field plot created", zap.String("plot_id", p.ID), zap.String("uid", uid))
	return p, nil
}

func (s *fieldSvc) List(ctx context.Context, uid string) ([]entities.FieldPlot, error) {
	return s.r.ListByUser(ctx, uid)
}

func (s *fieldSvc) Get(ctx context.Context, id, uid string) (*entities.FieldPlot, error) {
	p, err := s.r.FindByID(ctx, id, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return p, err
}

// Update applies a partial update; an update with no fields is rejected.
func (s *fieldSvc) Update(ctx context.Context, id, uid string, in entities.FieldPlotUpdate) (*entities.FieldPlot, error) {
	cur, err := s.Get(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := in.ApplyTo(cur); err != nil {
		return nil, service.Invalid(err.Error())
	}
	if err := s.r.Save(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *fieldSvc) Delete(ctx context.Context, id, uid string) error {
	err := s.r.Delete(ctx, id, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	if err == nil {
		s.log.Info("field plot deleted", zap.String("plot_id", id), zap.String("uid", uid))
	}
	return err
}
