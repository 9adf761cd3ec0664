package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"meal-planner/entities"
)

// recipeSchema is embedded in every recipe prompt so responses come back in
// a shape parseRecipeJSON understands.
const recipeSchema = `
{
  "name": "Recipe Name",
  "description": "Brief description",
  "servings": 4,
  "prep_time": "15 minutes",
  "cook_time": "30 minutes",
  "tags": "chicken,quick,dinner",
  "rating": 4,
  "instructions": "Step 1...\nStep 2...",
  "ingredients": [
    {"name": "chicken breast", "quantity": 2, "unit": "lbs"},
    {"name": "garlic", "quantity": 3, "unit": "cloves"}
  ]
}
`

// predefinedTags keeps bulk-generated recipes on a shared tag vocabulary so
// tag search stays useful.
const predefinedTags = "easy,quick,budget-friendly,comfort food,healthy,vegetarian,vegan," +
	"gluten-free,dairy-free,high-protein,meal-prep,kid-friendly,one-pot," +
	"slow-cooker,grilling,breakfast,lunch,dinner,snack,dessert,side-dish," +
	"soup,salad,favorite"

func formatQuantity(qty *float64) string {
	if qty == nil || *qty == 0 {
		return "?"
	}
	return strconv.FormatFloat(*qty, 'f', -1, 64)
}

func parseTextPrompt(text string) string {
	return fmt.Sprintf(`Extract the recipe from the following text and return it as JSON matching this schema exactly:
%s

Recipe text:
%s

Return only the JSON, wrapped in `+"```json```"+` code fences.`, recipeSchema, text)
}

func parseURLPrompt(url, pageContent string) string {
	return fmt.Sprintf(`Extract the recipe from the following web page content and return it as JSON matching this schema exactly:
%s

Also include "source_url": "%s" in the JSON.

Page content:
%s

Return only the JSON, wrapped in `+"```json```"+` code fences.`, recipeSchema, url, pageContent)
}

func generatePrompt(pantrySummary, preferences string) string {
	extra := ""
	if preferences != "" {
		extra = "\n\nAdditional preferences or constraints: " + preferences
	}
	return fmt.Sprintf(`I have the following items in my pantry/fridge/freezer:

%s

Please create a recipe I can make using primarily these ingredients. Return it as JSON matching this schema exactly:
%s
%s

Return only the JSON, wrapped in `+"```json```"+` code fences.`, pantrySummary, recipeSchema, extra)
}

func bulkGeneratePrompt(count int, pantrySummary, preferences string) string {
	extra := ""
	if preferences != "" {
		extra = "\n\nAdditional preferences: " + preferences
	}
	return fmt.Sprintf(`Generate exactly %d different recipes. Use a variety of meal types (breakfast, lunch, dinner, snacks).

My pantry/fridge/freezer contains:
%s

For tags, pick from this predefined list (comma-separated): %s
You may also add custom tags if needed.

Each recipe should include a rating from 1-5 (how good/recommended the recipe is).

Return a JSON array of %d recipe objects, each matching this schema:
%s
%s

Return only the JSON array, wrapped in `+"```json```"+` code fences.`, count, pantrySummary, predefinedTags, count, recipeSchema, extra)
}

func modifyPrompt(recipe *entities.Recipe, instruction string) string {
	var ingredients []string
	for _, ing := range recipe.Ingredients {
		qty := ""
		if ing.Quantity != nil {
			qty = strconv.FormatFloat(*ing.Quantity, 'f', -1, 64)
		}
		unit := ""
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		ingredients = append(ingredients, strings.TrimSpace(fmt.Sprintf("- %s %s %s", qty, unit, ing.Name)))
	}

	str := func(value *string) string {
		if value == nil {
			return ""
		}
		return *value
	}

	return fmt.Sprintf(`Modify the following recipe according to this instruction: %s

Current recipe:
Name: %s
Servings: %d
Prep time: %s
Cook time: %s
Description: %s
Tags: %s

Ingredients:
%s

Instructions:
%s

Return the modified recipe as JSON matching this schema exactly:
%s

Return only the JSON, wrapped in `+"```json```"+` code fences.`,
		instruction, recipe.Name, recipe.Servings, str(recipe.PrepTime), str(recipe.CookTime),
		str(recipe.Description), str(recipe.Tags), strings.Join(ingredients, "\n"),
		str(recipe.Instructions), recipeSchema)
}

func suggestWeekPrompt(pantrySummary, recipeList, preferences string) string {
	extra := ""
	if preferences != "" {
		extra = "\n\nPreferences/constraints: " + preferences
	}
	return fmt.Sprintf(`Help me plan a week of meals (Monday through Sunday, with Breakfast, Lunch, and Dinner each day).

My pantry/fridge/freezer contains:
%s

My saved recipes include:
%s

Prefer recipes with higher ratings (4-5 stars). Consider tags when planning: use 'breakfast' tagged recipes for breakfast slots, and respect dietary tags like 'vegetarian' and 'gluten-free'.

You can suggest meals from my saved recipes, simple meals using pantry items, or new recipe ideas.
Return a JSON array like this:
`+"```json"+`
[
  {"day": "Monday", "slot": "Breakfast", "meal": "Oatmeal with fruit", "notes": "Use pantry oats"},
  {"day": "Monday", "slot": "Lunch", "meal": "...", "notes": "..."}
]
`+"```"+`
%s

Return only the JSON array, wrapped in `+"```json```"+` code fences.`, pantrySummary, recipeList, extra)
}

func normalizePrompt(ingredients []entities.RecipeIngredient) string {
	lines := make([]string, 0, len(ingredients))
	for i, ing := range ingredients {
		unit := ""
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%d. %s %s %s", i, formatQuantity(ing.Quantity), unit, ing.Name)))
	}

	return fmt.Sprintf(`Convert these recipe ingredients into their purchasable shopping form.

For each ingredient:
1. Strip preparation instructions (drained, minced, divided, chopped, room temperature, etc.)
2. Convert to how the item is purchased (e.g. "30oz black beans drained" -> "canned black beans", qty 2, unit "15oz cans")
3. Keep qualifiers that affect what you buy: canned, dry, fresh, frozen, whole, ground, etc.
4. Use common grocery units: lbs, oz, each, bunch, cans, bags, bottles, etc.
5. Normalize the name to a common grocery name (e.g. "garlic cloves" -> "garlic")

Recipe ingredients:
%s

Return a JSON array with one entry per ingredient (same order), matching this schema:
`+"```json"+`
[
  {"index": 0, "shopping_name": "chicken breast", "shopping_qty": 2, "shopping_unit": "lbs"},
  {"index": 1, "shopping_name": "garlic", "shopping_qty": 1, "shopping_unit": "head"}
]
`+"```"+`

Return only the JSON array, wrapped in `+"```json```"+` code fences.`, strings.Join(lines, "\n"))
}

func estimatePricesPrompt(itemLines []string) string {
	return fmt.Sprintf(`Estimate current US grocery store prices for these ingredients.
Return a JSON object with EXACTLY these keys and a numeric price value for each.

Fill in this template:
`+"```json"+`
{
%s
}
`+"```"+`

Prices should be per the unit shown (e.g. per lb, per cup, per clove).
Replace each <price...> with a realistic number. Return only the filled-in JSON in `+"```json```"+` code fences.`, strings.Join(itemLines, ",\n"))
}

const receiptPrompt = `Extract all grocery items and their prices from this receipt.

For each item, provide:
- item_name: the product name (simplified to a common grocery name, e.g. "BLK BEANS 15OZ" -> "canned black beans")
- price: the total price paid for this item
- quantity: how many were purchased (default 1 if not clear)

Return a JSON array:
` + "```json" + `
[
  {"item_name": "canned black beans", "price": 1.29, "quantity": 2},
  {"item_name": "whole milk", "price": 4.99, "quantity": 1}
]
` + "```" + `

Ignore tax lines, subtotals, totals, and non-grocery items (bags, coupons, etc.).
Return only the JSON array, wrapped in ` + "```json```" + ` code fences.`
