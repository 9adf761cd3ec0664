package domain

import "errors"

// NoStoreGroup is the group label for items with no resolvable preferred
// store; StapleGroup holds needed staples without an assigned store.
const (
	NoStoreGroup = "No Store Assigned"
	StapleGroup  = "Staples"
)

var (
	MessageSuccessGenerateList   = "shopping list generated successfully"
	MessageSuccessEmailList      = "shopping list emailed successfully"
	MessageSuccessEstimatePrices = "prices estimated successfully"
	MessageSuccessSaveList       = "shopping list saved successfully"
	MessageSuccessLoadList       = "shopping list loaded successfully"
	MessageSuccessClearList      = "shopping list cleared successfully"

	MessageFailedGenerateList   = "failed to generate shopping list"
	MessageFailedEmailList      = "failed to email shopping list"
	MessageFailedEstimatePrices = "failed to estimate prices"
	MessageFailedSaveList       = "failed to save shopping list"
	MessageFailedLoadList       = "failed to load shopping list"
	MessageFailedClearList      = "failed to clear shopping list"

	ErrNoCachedList = errors.New("no cached shopping list")
)

type (
	GenerateListRequest struct {
		StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
		UsePantry *bool  `json:"use_pantry,omitempty"`
	}

	// ShoppingItem is one buy line. EstimatedCost is unit price times buy
	// quantity when a price source resolved, nil otherwise. Staple lines
	// carry a zero quantity and empty unit.
	ShoppingItem struct {
		Name          string   `json:"name"`
		Quantity      float64  `json:"quantity"`
		Unit          string   `json:"unit"`
		EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	}

	// ShoppingList groups buy lines by store name.
	ShoppingList map[string][]ShoppingItem

	// IngredientSource records one recipe occurrence that contributed
	// quantity to an aggregated ingredient line.
	IngredientSource struct {
		RecipeID   uint    `json:"recipe_id"`
		RecipeName string  `json:"recipe_name"`
		Date       string  `json:"date"`
		MealSlot   string  `json:"meal_slot"`
		Quantity   float64 `json:"quantity"`
		Unit       string  `json:"unit"`
	}

	GenerateListResponse struct {
		Stores    ShoppingList `json:"stores"`
		PlainText string       `json:"plain_text"`
		StartDate string       `json:"start_date"`
		EndDate   string       `json:"end_date"`
		UsePantry bool         `json:"use_pantry"`
	}

	// CachedShoppingList is the JSON payload persisted in the settings table.
	CachedShoppingList struct {
		ShoppingData      ShoppingList                  `json:"shopping_data"`
		IngredientSources map[string][]IngredientSource `json:"ingredient_sources"`
		StartDate         string                        `json:"start_date"`
		EndDate           string                        `json:"end_date"`
		UsePantry         bool                          `json:"use_pantry"`
	}

	EmailListRequest struct {
		To        string `json:"to" validate:"required,email"`
		StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
		UsePantry *bool  `json:"use_pantry,omitempty"`
	}
)
