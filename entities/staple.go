package entities

type Staple struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"uniqueIndex;not null" json:"name"`
	Category         *string `json:"category,omitempty"`
	PreferredStoreID *uint   `json:"preferred_store_id,omitempty"`
	NeedToBuy        bool    `gorm:"default:false" json:"need_to_buy"`

	PreferredStore *Store `gorm:"foreignKey:PreferredStoreID;constraint:OnDelete:SET NULL" json:"preferred_store,omitempty"`
	Timestamp
}
