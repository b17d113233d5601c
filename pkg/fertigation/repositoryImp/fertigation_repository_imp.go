package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldplot/entities"
	"fieldplot/pkg/fertigation/repository"
)

type fertigationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FertigationRepository { return &fertigationRepo{db} }

func (r *fertigationRepo) Create(ctx context.Context, e *entities.FertigationEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *fertigationRepo) ListByPlot(ctx context.Context, plotID string) ([]entities.FertigationEvent, error) {
	var out []entities.FertigationEvent
	if err := r.db.WithContext(ctx).Where("plot_id = ?", plotID).Order("date DESC, created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fertigationRepo) FindByID(ctx context.Context, id string) (*entities.FertigationEvent, error) {
	var e entities.FertigationEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *fertigationRepo) Save(ctx context.Context, e *entities.FertigationEvent) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *fertigationRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FertigationEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
