package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPrefersFencedBlock(t *testing.T) {
	text := "Here is the recipe you asked for:\n```json\n{\"name\": \"Chili\"}\n```\nEnjoy!"
	assert.Equal(t, `{"name": "Chili"}`, extractJSON(text))
}

func TestExtractJSONBareFence(t *testing.T) {
	text := "```\n[1, 2, 3]\n```"
	assert.Equal(t, "[1, 2, 3]", extractJSON(text))
}

func TestExtractJSONFallsBackToRawText(t *testing.T) {
	assert.Equal(t, `{"name": "Chili"}`, extractJSON("  {\"name\": \"Chili\"}\n"))
}

func TestParseRecipeJSONDefaults(t *testing.T) {
	recipe := parseRecipeJSON(`{"ingredients": [{"name": "beans", "quantity": 2, "unit": "cans"}]}`)
	require.NotNil(t, recipe)
	assert.Equal(t, "Untitled Recipe", recipe.Name)
	assert.Equal(t, 4, recipe.Servings)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "beans", recipe.Ingredients[0].Name)
	assert.Equal(t, 2.0, *recipe.Ingredients[0].Quantity)
	assert.Equal(t, "cans", *recipe.Ingredients[0].Unit)
}

func TestParseRecipeJSONFullObject(t *testing.T) {
	recipe := parseRecipeJSON("```json\n" + `{
		"name": "Weeknight Chili",
		"description": "Fast and hearty",
		"servings": 6,
		"prep_time": "10 min",
		"cook_time": "30 min",
		"instructions": "Brown the beef. Simmer everything.",
		"tags": "beef,quick,dinner",
		"rating": 4.6,
		"ingredients": [{"name": "ground beef", "quantity": 1, "unit": "lbs"}]
	}` + "\n```")
	require.NotNil(t, recipe)
	assert.Equal(t, "Weeknight Chili", recipe.Name)
	assert.Equal(t, 6, recipe.Servings)
	require.NotNil(t, recipe.Rating)
	assert.Equal(t, 4, *recipe.Rating)
}

func TestParseRecipeJSONGarbage(t *testing.T) {
	assert.Nil(t, parseRecipeJSON("I could not find a recipe on that page."))
}

func TestClampRating(t *testing.T) {
	assert.Nil(t, clampRating(nil))

	low := -2.0
	assert.Equal(t, 1, *clampRating(&low))

	high := 11.0
	assert.Equal(t, 5, *clampRating(&high))

	mid := 3.9
	assert.Equal(t, 3, *clampRating(&mid))
}

func TestParseRecipeListJSONArray(t *testing.T) {
	recipes := parseRecipeListJSON(`[{"name": "A"}, {"name": "B"}]`)
	require.Len(t, recipes, 2)
	assert.Equal(t, "A", recipes[0].Name)
	assert.Equal(t, "B", recipes[1].Name)
}

func TestParseRecipeListJSONSingleObjectFallback(t *testing.T) {
	recipes := parseRecipeListJSON(`{"name": "Solo"}`)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Solo", recipes[0].Name)
}

func TestParseRecipeListJSONGarbage(t *testing.T) {
	assert.Nil(t, parseRecipeListJSON("no recipes today"))
}
