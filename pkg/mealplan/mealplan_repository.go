package mealplan

import (
	"context"
	"errors"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		GetByDateSlot(ctx context.Context, date, slot string) (*entities.MealPlanEntry, error)
		GetInRange(ctx context.Context, start, end string) ([]*entities.MealPlanEntry, error)
		Add(ctx context.Context, entry *entities.MealPlanEntry) error
		Update(ctx context.Context, entry *entities.MealPlanEntry) error
		DeleteByDateSlot(ctx context.Context, date, slot string) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) GetByDateSlot(ctx context.Context, date, slot string) (*entities.MealPlanEntry, error) {
	var entry entities.MealPlanEntry
	err := r.db.WithContext(ctx).Where("date = ? AND meal_slot = ?", date, slot).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mealPlanRepository) GetInRange(ctx context.Context, start, end string) ([]*entities.MealPlanEntry, error) {
	var entries []*entities.MealPlanEntry
	if err := r.db.WithContext(ctx).Preload("Recipe").
		Where("date >= ? AND date <= ?", start, end).
		Order("date asc, meal_slot asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mealPlanRepository) Add(ctx context.Context, entry *entities.MealPlanEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mealPlanRepository) Update(ctx context.Context, entry *entities.MealPlanEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *mealPlanRepository) DeleteByDateSlot(ctx context.Context, date, slot string) error {
	return r.db.WithContext(ctx).
		Where("date = ? AND meal_slot = ?", date, slot).
		Delete(&entities.MealPlanEntry{}).Error
}
