package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldplot/entities"
	"fieldplot/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(ctx context.Context, p *entities.FieldPlot) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *fieldRepo) ListByUser(ctx context.Context, uid string) ([]entities.FieldPlot, error) {
	var out []entities.FieldPlot
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fieldRepo) FindByID(ctx context.Context, id, uid string) (*entities.FieldPlot, error) {
	var p entities.FieldPlot
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *fieldRepo) Save(ctx context.Context, p *entities.FieldPlot) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *fieldRepo) Delete(ctx context.Context, id, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, uid).Delete(&entities.FieldPlot{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("plot_id = ?", id).Delete(&entities.FertigationEvent{}).Error
	})
}
