package entities

type Recipe struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  *string `json:"description,omitempty"`
	Servings     int     `gorm:"default:4" json:"servings"`
	PrepTime     *string `json:"prep_time,omitempty"`
	CookTime     *string `json:"cook_time,omitempty"`
	Instructions *string `gorm:"type:text" json:"instructions,omitempty"`
	SourceURL    *string `json:"source_url,omitempty"`
	Tags         *string `json:"tags,omitempty"` // comma-separated, e.g. "chicken,quick,dinner"
	Rating       *int    `json:"rating,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Timestamp
}

type RecipeIngredient struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID       uint     `gorm:"not null;index" json:"recipe_id"`
	Name           string   `gorm:"not null" json:"name"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Unit           *string  `json:"unit,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`

	// Normalized purchasable form, populated by the AI normalizer. When nil,
	// consumers fall back to the raw name/quantity/unit.
	ShoppingName *string  `json:"shopping_name,omitempty"`
	ShoppingQty  *float64 `json:"shopping_qty,omitempty"`
	ShoppingUnit *string  `json:"shopping_unit,omitempty"`
}
