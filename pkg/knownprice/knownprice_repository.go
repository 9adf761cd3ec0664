package knownprice

import (
	"context"
	"errors"
	"strings"
	"time"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	KnownPriceRepository interface {
		GetAll(ctx context.Context) ([]*entities.KnownPrice, error)
		GetByName(ctx context.Context, itemName string) (*entities.KnownPrice, error)
		Upsert(ctx context.Context, itemName string, unitPrice float64, unit *string, storeID *uint) error
		Delete(ctx context.Context, id uint) error
	}

	knownPriceRepository struct {
		db *gorm.DB
	}
)

func NewKnownPriceRepository(db *gorm.DB) KnownPriceRepository {
	return &knownPriceRepository{db: db}
}

func (r *knownPriceRepository) GetAll(ctx context.Context) ([]*entities.KnownPrice, error) {
	var prices []*entities.KnownPrice
	if err := r.db.WithContext(ctx).Order("item_name asc").Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *knownPriceRepository) GetByName(ctx context.Context, itemName string) (*entities.KnownPrice, error) {
	var price entities.KnownPrice
	err := r.db.WithContext(ctx).Where("LOWER(item_name) = LOWER(TRIM(?))", itemName).First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// Upsert matches by case-insensitive item name: existing rows keep their
// original casing and identity, only price/unit/store/timestamp move.
func (r *knownPriceRepository) Upsert(ctx context.Context, itemName string, unitPrice float64, unit *string, storeID *uint) error {
	itemName = strings.TrimSpace(itemName)

	existing, err := r.GetByName(ctx, itemName)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.UnitPrice = unitPrice
		existing.Unit = unit
		existing.StoreID = storeID
		existing.LastUpdated = time.Now()
		return r.db.WithContext(ctx).Save(existing).Error
	}

	return r.db.WithContext(ctx).Create(&entities.KnownPrice{
		ItemName:    itemName,
		UnitPrice:   unitPrice,
		Unit:        unit,
		StoreID:     storeID,
		LastUpdated: time.Now(),
	}).Error
}

func (r *knownPriceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.KnownPrice{}).Error
}
