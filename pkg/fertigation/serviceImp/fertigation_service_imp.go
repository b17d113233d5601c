package serviceImp

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldplot/entities"
	repo "fieldplot/pkg/fertigation/repository"
	"fieldplot/pkg/fertigation/service"
	fieldsvc "fieldplot/pkg/field/service"
	"fieldplot/pkg/logger"
)

type fertigationSvc struct {
	r      repo.FertigationRepository
	fields fieldsvc.FieldService
	log    *zap.Logger
}

func NewFertigationService(r repo.FertigationRepository, fields fieldsvc.FieldService, log *zap.Logger) service.FertigationService {
	return &fertigationSvc{r: r, fields: fields, log: logger.OrNop(log)}
}

func (s *fertigationSvc) Create(ctx context.Context, uid, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	if _, err := s.fields.Get(ctx, plotID, uid); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fieldsvc.Invalid(err.Error())
	}
	e := &entities.FertigationEvent{PlotID: plotID}
	in.ApplyTo(e)
	if err := s.r.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info("fertigation event logged", zap.String("plot_id", plotID), zap.String("event_id", e.ID))
	return e, nil
}

func (s *fertigationSvc) List(ctx context.Context, uid, plotID string) ([]entities.FertigationEvent, error) {
	if _, err := s.fields.Get(ctx, plotID, uid); err != nil {
		return nil, err
	}
	return s.r.ListByPlot(ctx, plotID)
}

func (s *fertigationSvc) Update(ctx context.Context, uid, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	e, err := s.owned(ctx, uid, eventID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fieldsvc.Invalid(err.Error())
	}
	in.ApplyTo(e)
	if err := s.r.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *fertigationSvc) Delete(ctx context.Context, uid, eventID string) error {
	if _, err := s.owned(ctx, uid, eventID); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fieldsvc.ErrNotFound
		}
		return err
	}
	return nil
}

// owned loads the event and checks its plot belongs to uid; other users' events read as not found.
func (s *fertigationSvc) owned(ctx context.Context, uid, eventID string) (*entities.FertigationEvent, error) {
	e, err := s.r.FindByID(ctx, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fieldsvc.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.fields.Get(ctx, e.PlotID, uid); err != nil {
		return nil, err
	}
	return e, nil
}
