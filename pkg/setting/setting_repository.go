package setting

import (
	"context"
	"errors"

	"meal-planner/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// SettingRepository is a tiny key/value store used for app-level state
	// such as the cached shopping list.
	SettingRepository interface {
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, key string) error
	}

	settingRepository struct {
		db *gorm.DB
	}
)

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns an empty string for missing keys.
func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entities.Setting{Key: key, Value: value}).Error
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
}
