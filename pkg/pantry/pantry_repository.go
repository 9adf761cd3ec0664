package pantry

import (
	"context"
	"errors"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	PantryRepository interface {
		GetAll(ctx context.Context, location, category string) ([]*entities.PantryItem, error)
		GetByID(ctx context.Context, id uint) (*entities.PantryItem, error)
		GetByBarcode(ctx context.Context, barcode string) (*entities.PantryItem, error)
		GetByNameAndBrand(ctx context.Context, name string, brand *string) (*entities.PantryItem, error)
		Add(ctx context.Context, item *entities.PantryItem) error
		Update(ctx context.Context, item *entities.PantryItem) error
		Delete(ctx context.Context, id uint) error
		DeleteMany(ctx context.Context, ids []uint) (int64, error)
		GetExpiringBetween(ctx context.Context, from, to string) ([]*entities.PantryItem, error)
		GetLocations(ctx context.Context) ([]string, error)
		GetCategories(ctx context.Context) ([]string, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) GetAll(ctx context.Context, location, category string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem

	query := r.db.WithContext(ctx).Preload("PreferredStore")
	if location != "" {
		query = query.Where("location = ?", location)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) GetByID(ctx context.Context, id uint) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).Preload("PreferredStore").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) GetByBarcode(ctx context.Context, barcode string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) GetByNameAndBrand(ctx context.Context, name string, brand *string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if brand != nil {
		query = query.Where("brand = ? OR brand IS NULL", *brand)
	} else {
		query = query.Where("brand IS NULL")
	}
	err := query.First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) Add(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) Update(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pantryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}

func (r *pantryRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.PantryItem{})
	return result.RowsAffected, result.Error
}

func (r *pantryRepository) GetExpiringBetween(ctx context.Context, from, to string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	if err := r.db.WithContext(ctx).
		Where("best_by IS NOT NULL AND best_by >= ? AND best_by <= ?", from, to).
		Order("best_by asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) GetLocations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := r.db.WithContext(ctx).Model(&entities.PantryItem{}).
		Distinct("location").
		Where("location IS NOT NULL").
		Order("location asc").
		Pluck("location", &locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *pantryRepository) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&entities.PantryItem{}).
		Distinct("category").
		Where("category IS NOT NULL").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
