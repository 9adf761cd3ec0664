package entities

type MealPlanEntry struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Date     string  `gorm:"not null;index:idx_meal_plan_date_slot,unique" json:"date"` // ISO YYYY-MM-DD
	MealSlot string  `gorm:"not null;index:idx_meal_plan_date_slot,unique" json:"meal_slot"`
	RecipeID *uint   `json:"recipe_id,omitempty"`
	Servings int     `gorm:"default:1" json:"servings"`
	Notes    *string `json:"notes,omitempty"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
	Timestamp
}
