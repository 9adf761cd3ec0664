package store

import (
	"context"
	"errors"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	StoreRepository interface {
		GetAll(ctx context.Context) ([]*entities.Store, error)
		GetByID(ctx context.Context, id uint) (*entities.Store, error)
		GetByName(ctx context.Context, name string) (*entities.Store, error)
		Add(ctx context.Context, store *entities.Store) error
		Update(ctx context.Context, store *entities.Store) error
		Delete(ctx context.Context, id uint) error
	}

	storeRepository struct {
		db *gorm.DB
	}
)

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) GetAll(ctx context.Context) ([]*entities.Store, error) {
	var stores []*entities.Store
	if err := r.db.WithContext(ctx).Order("name asc").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uint) (*entities.Store, error) {
	var store entities.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByName(ctx context.Context, name string) (*entities.Store, error) {
	var store entities.Store
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Add(ctx context.Context, store *entities.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) Update(ctx context.Context, store *entities.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete nullifies pantry and staple references before removing the row, the
// same order the schema's ON DELETE SET NULL would apply.
func (r *storeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.PantryItem{}).
			Where("preferred_store_id = ?", id).
			Update("preferred_store_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Staple{}).
			Where("preferred_store_id = ?", id).
			Update("preferred_store_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.KnownPrice{}).
			Where("store_id = ?", id).
			Update("store_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Store{}).Error
	})
}
