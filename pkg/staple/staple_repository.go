package staple

import (
	"context"
	"errors"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	StapleRepository interface {
		GetAll(ctx context.Context) ([]*entities.Staple, error)
		GetByID(ctx context.Context, id uint) (*entities.Staple, error)
		GetByName(ctx context.Context, name string) (*entities.Staple, error)
		GetByNeedToBuy(ctx context.Context, need bool) ([]*entities.Staple, error)
		Add(ctx context.Context, staple *entities.Staple) error
		Update(ctx context.Context, staple *entities.Staple) error
		Delete(ctx context.Context, id uint) error
	}

	stapleRepository struct {
		db *gorm.DB
	}
)

func NewStapleRepository(db *gorm.DB) StapleRepository {
	return &stapleRepository{db: db}
}

func (r *stapleRepository) GetAll(ctx context.Context) ([]*entities.Staple, error) {
	var staples []*entities.Staple
	if err := r.db.WithContext(ctx).Preload("PreferredStore").Order("name asc").Find(&staples).Error; err != nil {
		return nil, err
	}
	return staples, nil
}

func (r *stapleRepository) GetByID(ctx context.Context, id uint) (*entities.Staple, error) {
	var staple entities.Staple
	if err := r.db.WithContext(ctx).Preload("PreferredStore").Where("id = ?", id).First(&staple).Error; err != nil {
		return nil, err
	}
	return &staple, nil
}

func (r *stapleRepository) GetByName(ctx context.Context, name string) (*entities.Staple, error) {
	var staple entities.Staple
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(TRIM(?))", name).First(&staple).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staple, nil
}

func (r *stapleRepository) GetByNeedToBuy(ctx context.Context, need bool) ([]*entities.Staple, error) {
	var staples []*entities.Staple
	if err := r.db.WithContext(ctx).Preload("PreferredStore").
		Where("need_to_buy = ?", need).
		Order("name asc").
		Find(&staples).Error; err != nil {
		return nil, err
	}
	return staples, nil
}

func (r *stapleRepository) Add(ctx context.Context, staple *entities.Staple) error {
	return r.db.WithContext(ctx).Create(staple).Error
}

func (r *stapleRepository) Update(ctx context.Context, staple *entities.Staple) error {
	return r.db.WithContext(ctx).Save(staple).Error
}

func (r *stapleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Staple{}).Error
}
