package domain

import "errors"

var (
	MessageSuccessAddRecipe       = "recipe added successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessGetRecipes      = "recipes retrieved successfully"
	MessageSuccessNormalizeRecipe = "recipe ingredients normalized successfully"
	MessageSuccessParseRecipe     = "recipe parsed successfully"
	MessageSuccessGenerateRecipe  = "recipe generated successfully"
	MessageSuccessModifyRecipe    = "recipe modified successfully"

	MessageFailedAddRecipe       = "failed to add recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedGetRecipes      = "failed to retrieve recipes"
	MessageFailedNormalizeRecipe = "failed to normalize recipe ingredients"
	MessageFailedParseRecipe     = "failed to parse recipe"
	MessageFailedGenerateRecipe  = "failed to generate recipe"
	MessageFailedModifyRecipe    = "failed to modify recipe"

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type (
	RecipeIngredientRequest struct {
		Name           string   `json:"name" validate:"required"`
		Quantity       *float64 `json:"quantity,omitempty"`
		Unit           *string  `json:"unit,omitempty"`
		EstimatedPrice *float64 `json:"estimated_price,omitempty" validate:"omitempty,gt=0"`
	}

	RecipeRequest struct {
		Name         string                    `json:"name" validate:"required"`
		Description  *string                   `json:"description,omitempty"`
		Servings     int                       `json:"servings" validate:"omitempty,gt=0"`
		PrepTime     *string                   `json:"prep_time,omitempty"`
		CookTime     *string                   `json:"cook_time,omitempty"`
		Instructions *string                   `json:"instructions,omitempty"`
		SourceURL    *string                   `json:"source_url,omitempty"`
		Tags         *string                   `json:"tags,omitempty"`
		Rating       *int                      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
		Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
	}

	RecipeIngredientResponse struct {
		ID             uint     `json:"id"`
		Name           string   `json:"name"`
		Quantity       *float64 `json:"quantity,omitempty"`
		Unit           *string  `json:"unit,omitempty"`
		EstimatedPrice *float64 `json:"estimated_price,omitempty"`
		ShoppingName   *string  `json:"shopping_name,omitempty"`
		ShoppingQty    *float64 `json:"shopping_qty,omitempty"`
		ShoppingUnit   *string  `json:"shopping_unit,omitempty"`
	}

	RecipeResponse struct {
		ID           uint                       `json:"id"`
		Name         string                     `json:"name"`
		Description  *string                    `json:"description,omitempty"`
		Servings     int                        `json:"servings"`
		PrepTime     *string                    `json:"prep_time,omitempty"`
		CookTime     *string                    `json:"cook_time,omitempty"`
		Instructions *string                    `json:"instructions,omitempty"`
		SourceURL    *string                    `json:"source_url,omitempty"`
		Tags         *string                    `json:"tags,omitempty"`
		Rating       *int                       `json:"rating,omitempty"`
		Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	}

	ParseRecipeTextRequest struct {
		Text string `json:"text" validate:"required"`
	}

	ParseRecipeURLRequest struct {
		URL string `json:"url" validate:"required,url"`
	}

	GenerateRecipeRequest struct {
		Preferences string `json:"preferences"`
	}

	BulkGenerateRecipesRequest struct {
		Count       int    `json:"count" validate:"omitempty,min=1,max=10"`
		Preferences string `json:"preferences"`
	}

	ModifyRecipeRequest struct {
		Instruction string `json:"instruction" validate:"required"`
	}
)
