package entities

type PantryItem struct {
	ID               uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string   `gorm:"not null" json:"name"`
	Barcode          *string  `json:"barcode,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Location         *string  `json:"location,omitempty"` // Pantry, Fridge, Freezer
	Brand            *string  `json:"brand,omitempty"`
	Quantity         float64  `gorm:"default:1" json:"quantity"`
	Unit             *string  `json:"unit,omitempty"`
	StockedDate      *string  `json:"stocked_date,omitempty"` // ISO YYYY-MM-DD
	BestBy           *string  `json:"best_by,omitempty"`      // ISO YYYY-MM-DD
	PreferredStoreID *uint    `json:"preferred_store_id,omitempty"`
	ProductNotes     *string  `json:"product_notes,omitempty"`
	ItemNotes        *string  `json:"item_notes,omitempty"`
	EstimatedPrice   *float64 `json:"estimated_price,omitempty"`

	// Deprecated: superseded by the standalone Staple entity. Kept for the
	// one-time data migration in cmd/database/migrate; never read elsewhere.
	IsStaple bool `gorm:"default:false" json:"-"`

	PreferredStore *Store `gorm:"foreignKey:PreferredStoreID;constraint:OnDelete:SET NULL" json:"preferred_store,omitempty"`
	Timestamp
}
