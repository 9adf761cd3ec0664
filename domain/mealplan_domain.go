package domain

import "errors"

// MealSlots is the fixed ordered set of slots in the weekly grid.
var MealSlots = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

var (
	MessageSuccessSetMeal   = "meal set successfully"
	MessageSuccessClearMeal = "meal cleared successfully"
	MessageSuccessGetWeek   = "week retrieved successfully"
	MessageSuccessApplyWeek = "week suggestions applied successfully"

	MessageFailedSetMeal   = "failed to set meal"
	MessageFailedClearMeal = "failed to clear meal"
	MessageFailedGetWeek   = "failed to retrieve week"
	MessageFailedApplyWeek = "failed to apply week suggestions"

	ErrInvalidMealSlot = errors.New("invalid meal slot")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
)

type (
	SetMealRequest struct {
		Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
		Slot     string  `json:"slot" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
		RecipeID *uint   `json:"recipe_id,omitempty"`
		Servings int     `json:"servings" validate:"omitempty,gt=0"`
		Notes    *string `json:"notes,omitempty"`
	}

	ClearMealRequest struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
		Slot string `json:"slot" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	}

	MealPlanEntryResponse struct {
		ID         uint    `json:"id"`
		Date       string  `json:"date"`
		MealSlot   string  `json:"meal_slot"`
		RecipeID   *uint   `json:"recipe_id,omitempty"`
		RecipeName *string `json:"recipe_name,omitempty"`
		Servings   int     `json:"servings"`
		Notes      *string `json:"notes,omitempty"`
	}

	// WeekResponse maps each of the 7 dates to a slot map. Every slot key is
	// present; empty cells hold nil so renderers can address the full grid.
	WeekResponse struct {
		WeekStart string                                       `json:"week_start"`
		Days      map[string]map[string]*MealPlanEntryResponse `json:"days"`
	}

	WeekSuggestion struct {
		Day   string `json:"day"`
		Slot  string `json:"slot"`
		Meal  string `json:"meal"`
		Notes string `json:"notes"`
	}

	SuggestWeekRequest struct {
		Week        string `json:"week" validate:"omitempty,datetime=2006-01-02"`
		Preferences string `json:"preferences"`
	}

	ApplyWeekRequest struct {
		Week        string           `json:"week" validate:"required,datetime=2006-01-02"`
		Suggestions []WeekSuggestion `json:"suggestions" validate:"required,dive"`
	}
)
