package assistant

import (
	"encoding/json"
	"regexp"
	"strings"

	"meal-planner/entities"
)

// fencedJSON matches a ```json ... ``` (or bare ```) code fence.
var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]+?)\\s*```")

// extractJSON pulls the JSON payload out of a model response: the first
// fenced code block if present, otherwise the trimmed response itself.
func extractJSON(text string) string {
	if match := fencedJSON.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return strings.TrimSpace(text)
}

type recipePayload struct {
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	Servings     *int                `json:"servings"`
	PrepTime     *string             `json:"prep_time"`
	CookTime     *string             `json:"cook_time"`
	Instructions *string             `json:"instructions"`
	SourceURL    *string             `json:"source_url"`
	Tags         *string             `json:"tags"`
	Rating       *float64            `json:"rating"`
	Ingredients  []ingredientPayload `json:"ingredients"`
}

type ingredientPayload struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// clampRating coerces a model-provided rating into the 1..5 range,
// dropping anything non-sensical.
func clampRating(rating *float64) *int {
	if rating == nil {
		return nil
	}
	value := int(*rating)
	if value < 1 {
		value = 1
	}
	if value > 5 {
		value = 5
	}
	return &value
}

func (p recipePayload) toRecipe() *entities.Recipe {
	name := p.Name
	if name == "" {
		name = "Untitled Recipe"
	}
	servings := 4
	if p.Servings != nil && *p.Servings > 0 {
		servings = *p.Servings
	}

	ingredients := make([]entities.RecipeIngredient, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		ingredients = append(ingredients, entities.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	return &entities.Recipe{
		Name:         name,
		Description:  p.Description,
		Servings:     servings,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Instructions: p.Instructions,
		SourceURL:    p.SourceURL,
		Tags:         p.Tags,
		Rating:       clampRating(p.Rating),
		Ingredients:  ingredients,
	}
}

// parseRecipeJSON parses a single recipe object from a model response.
// Returns nil when the response carries no parseable recipe.
func parseRecipeJSON(text string) *entities.Recipe {
	var payload recipePayload
	if err := json.Unmarshal([]byte(extractJSON(text)), &payload); err != nil {
		return nil
	}
	return payload.toRecipe()
}

// parseRecipeListJSON parses an array of recipes; a single object is
// accepted as a one-element list. Entries that fail to decode are skipped.
func parseRecipeListJSON(text string) []*entities.Recipe {
	raw := extractJSON(text)

	var payloads []recipePayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		var single recipePayload
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil
		}
		payloads = []recipePayload{single}
	}

	recipes := make([]*entities.Recipe, 0, len(payloads))
	for _, payload := range payloads {
		recipes = append(recipes, payload.toRecipe())
	}
	return recipes
}
