package entities

import "time"

type KnownPrice struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemName    string    `gorm:"uniqueIndex;not null" json:"item_name"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Unit        *string   `json:"unit,omitempty"`
	StoreID     *uint     `json:"store_id,omitempty"`
	LastUpdated time.Time `gorm:"type:timestamp;autoUpdateTime" json:"last_updated"`

	Store *Store `gorm:"foreignKey:StoreID;constraint:OnDelete:SET NULL" json:"store,omitempty"`
}
