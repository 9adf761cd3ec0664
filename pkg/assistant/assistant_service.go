package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/internal/utils"
	"meal-planner/pkg/pantry"

	"go.uber.org/zap"
)

// maxPageContent bounds how much scraped page text goes into a parse-URL
// prompt, to stay under model token limits.
const maxPageContent = 12000

type (
	AssistantService interface {
		NormalizeIngredients(ctx context.Context, ingredients []entities.RecipeIngredient) ([]domain.NormalizedIngredient, error)
		ParseRecipeText(ctx context.Context, text string) (*entities.Recipe, error)
		ParseRecipeURL(ctx context.Context, url string) (*entities.Recipe, error)
		GenerateRecipe(ctx context.Context, preferences string) (*entities.Recipe, error)
		BulkGenerateRecipes(ctx context.Context, count int, preferences string) ([]*entities.Recipe, error)
		ModifyRecipe(ctx context.Context, recipe *entities.Recipe, instruction string) (*entities.Recipe, error)
		SuggestWeek(ctx context.Context, recipes []*entities.Recipe, preferences string) ([]domain.WeekSuggestion, error)
		EstimatePrices(ctx context.Context, items []domain.ShoppingItem) (map[string]float64, error)
		ParseReceiptImages(ctx context.Context, images []domain.ReceiptImage) ([]domain.ReceiptItem, error)
	}

	// completionClient is what the service needs from the model wrapper;
	// satisfied by anthropicClient and stubbed in tests.
	completionClient interface {
		complete(ctx context.Context, prompt string, maxTokens int) (string, error)
		completeWithImages(ctx context.Context, prompt string, images []domain.ReceiptImage, maxTokens int) (string, error)
	}

	assistantService struct {
		client           completionClient
		pantryRepository pantry.PantryRepository
		fetchClient      *http.Client
	}
)

func NewAssistantService(pantryRepository pantry.PantryRepository) AssistantService {
	return &assistantService{
		client:           newAnthropicClient(),
		pantryRepository: pantryRepository,
		fetchClient:      &http.Client{Timeout: 15 * time.Second},
	}
}

// pantrySummary renders current pantry contents as prompt context.
func (s *assistantService) pantrySummary(ctx context.Context) string {
	items, err := s.pantryRepository.GetAll(ctx, "", "")
	if err != nil || len(items) == 0 {
		return "Pantry is empty."
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		parts := []string{item.Name}
		if item.Brand != nil {
			parts = append(parts, fmt.Sprintf("(%s)", *item.Brand))
		}
		qty := "?"
		if item.Quantity != 0 {
			qty = formatQuantity(&item.Quantity)
		}
		if item.Unit != nil {
			qty += " " + *item.Unit
		}
		parts = append(parts, "— qty: "+qty)
		if item.Location != nil {
			parts = append(parts, fmt.Sprintf("[%s]", *item.Location))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// NormalizeIngredients asks the model for the purchasable form of each
// ingredient. The result is aligned to the input by the response's "index"
// field, not by position; entries the model skipped come back all-nil.
// Persisting the result is the caller's responsibility.
func (s *assistantService) NormalizeIngredients(ctx context.Context, ingredients []entities.RecipeIngredient) ([]domain.NormalizedIngredient, error) {
	if len(ingredients) == 0 {
		return []domain.NormalizedIngredient{}, nil
	}

	text, err := s.client.complete(ctx, normalizePrompt(ingredients), 2048)
	if err != nil {
		return nil, err
	}

	var payload []struct {
		Index        *int     `json:"index"`
		ShoppingName *string  `json:"shopping_name"`
		ShoppingQty  *float64 `json:"shopping_qty"`
		ShoppingUnit *string  `json:"shopping_unit"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &payload); err != nil {
		utils.Logger.Warn("normalizer response not parseable", zap.Error(err))
		return nil, domain.ErrAIResponseInvalid
	}

	byIndex := make(map[int]int, len(payload))
	for i, entry := range payload {
		index := i
		if entry.Index != nil {
			index = *entry.Index
		}
		byIndex[index] = i
	}

	result := make([]domain.NormalizedIngredient, len(ingredients))
	for i := range ingredients {
		if j, ok := byIndex[i]; ok {
			result[i] = domain.NormalizedIngredient{
				ShoppingName: payload[j].ShoppingName,
				ShoppingQty:  payload[j].ShoppingQty,
				ShoppingUnit: payload[j].ShoppingUnit,
			}
		}
	}
	return result, nil
}

func (s *assistantService) ParseRecipeText(ctx context.Context, text string) (*entities.Recipe, error) {
	response, err := s.client.complete(ctx, parseTextPrompt(text), 2048)
	if err != nil {
		return nil, err
	}
	recipe := parseRecipeJSON(response)
	if recipe == nil {
		return nil, domain.ErrAIResponseInvalid
	}
	return recipe, nil
}

var (
	scriptStyleRe = regexp.MustCompile(`(?i)<(script|style)[^>]*>[\s\S]*?</(script|style)>`)
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

func (s *assistantService) ParseRecipeURL(ctx context.Context, url string) (*entities.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchURLFailed, err)
	}
	resp, err := s.fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchURLFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrFetchURLFailed, resp.StatusCode)
	}
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchURLFailed, err)
	}

	// Strip the page down to text content to keep the prompt small.
	clean := scriptStyleRe.ReplaceAllString(string(html), "")
	clean = htmlTagRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, " "))
	if len(clean) > maxPageContent {
		clean = clean[:maxPageContent] + "..."
	}

	response, err := s.client.complete(ctx, parseURLPrompt(url, clean), 2048)
	if err != nil {
		return nil, err
	}
	recipe := parseRecipeJSON(response)
	if recipe == nil {
		return nil, domain.ErrAIResponseInvalid
	}
	recipe.SourceURL = &url
	return recipe, nil
}

func (s *assistantService) GenerateRecipe(ctx context.Context, preferences string) (*entities.Recipe, error) {
	response, err := s.client.complete(ctx, generatePrompt(s.pantrySummary(ctx), preferences), 2048)
	if err != nil {
		return nil, err
	}
	recipe := parseRecipeJSON(response)
	if recipe == nil {
		return nil, domain.ErrAIResponseInvalid
	}
	return recipe, nil
}

func (s *assistantService) BulkGenerateRecipes(ctx context.Context, count int, preferences string) ([]*entities.Recipe, error) {
	if count <= 0 {
		count = 5
	}
	response, err := s.client.complete(ctx, bulkGeneratePrompt(count, s.pantrySummary(ctx), preferences), 4096)
	if err != nil {
		return nil, err
	}
	recipes := parseRecipeListJSON(response)
	if recipes == nil {
		return nil, domain.ErrAIResponseInvalid
	}
	return recipes, nil
}

// ModifyRecipe returns a new recipe reflecting the instruction. The source
// URL and any per-ingredient price estimates from the original are carried
// over, matched by case-insensitive ingredient name.
func (s *assistantService) ModifyRecipe(ctx context.Context, recipe *entities.Recipe, instruction string) (*entities.Recipe, error) {
	response, err := s.client.complete(ctx, modifyPrompt(recipe, instruction), 2048)
	if err != nil {
		return nil, err
	}
	modified := parseRecipeJSON(response)
	if modified == nil {
		return nil, domain.ErrAIResponseInvalid
	}

	if recipe.SourceURL != nil {
		modified.SourceURL = recipe.SourceURL
	}
	prices := make(map[string]*float64, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if ing.EstimatedPrice != nil {
			prices[utils.FoldName(ing.Name)] = ing.EstimatedPrice
		}
	}
	for i := range modified.Ingredients {
		if price, ok := prices[utils.FoldName(modified.Ingredients[i].Name)]; ok {
			modified.Ingredients[i].EstimatedPrice = price
		}
	}
	return modified, nil
}

func formatRecipesForSuggest(recipes []*entities.Recipe) string {
	if len(recipes) == 0 {
		return "None saved yet"
	}
	lines := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		parts := []string{"- " + recipe.Name}
		if recipe.Tags != nil && *recipe.Tags != "" {
			parts = append(parts, fmt.Sprintf("[%s]", *recipe.Tags))
		}
		if recipe.Rating != nil {
			parts = append(parts, fmt.Sprintf("(rating: %d/5)", *recipe.Rating))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

func (s *assistantService) SuggestWeek(ctx context.Context, recipes []*entities.Recipe, preferences string) ([]domain.WeekSuggestion, error) {
	prompt := suggestWeekPrompt(s.pantrySummary(ctx), formatRecipesForSuggest(recipes), preferences)
	response, err := s.client.complete(ctx, prompt, 4096)
	if err != nil {
		return nil, err
	}

	var suggestions []domain.WeekSuggestion
	if err := json.Unmarshal([]byte(extractJSON(response)), &suggestions); err != nil {
		return nil, domain.ErrAIResponseInvalid
	}
	return suggestions, nil
}

// EstimatePrices returns estimated unit prices keyed by folded item name.
// Non-numeric or non-positive values in the response are dropped.
func (s *assistantService) EstimatePrices(ctx context.Context, items []domain.ShoppingItem) (map[string]float64, error) {
	if len(items) == 0 {
		return map[string]float64{}, nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		unit := " per unit"
		if item.Unit != "" {
			unit = " per " + item.Unit
		}
		lines = append(lines, fmt.Sprintf("  %q: <price%s>", utils.FoldName(item.Name), unit))
	}

	response, err := s.client.complete(ctx, estimatePricesPrompt(lines), 2048)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.Number
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, domain.ErrAIResponseInvalid
	}

	result := make(map[string]float64, len(payload))
	for key, value := range payload {
		price, err := value.Float64()
		if err != nil || price <= 0 {
			continue
		}
		result[utils.FoldName(key)] = price
	}
	return result, nil
}

// ParseReceiptImages extracts grocery line items from receipt photos.
// Invalid entries (empty name, non-positive price or quantity) are skipped;
// unit price is the line total divided by quantity, rounded to cents.
func (s *assistantService) ParseReceiptImages(ctx context.Context, images []domain.ReceiptImage) ([]domain.ReceiptItem, error) {
	if len(images) == 0 {
		return []domain.ReceiptItem{}, nil
	}

	response, err := s.client.completeWithImages(ctx, receiptPrompt, images, 4096)
	if err != nil {
		return nil, err
	}

	var payload []struct {
		ItemName string   `json:"item_name"`
		Price    *float64 `json:"price"`
		Quantity *int     `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return nil, domain.ErrAIResponseInvalid
	}

	items := make([]domain.ReceiptItem, 0, len(payload))
	for _, entry := range payload {
		name := strings.TrimSpace(entry.ItemName)
		qty := 1
		if entry.Quantity != nil {
			qty = *entry.Quantity
		}
		if name == "" || entry.Price == nil || *entry.Price <= 0 || qty <= 0 {
			continue
		}
		items = append(items, domain.ReceiptItem{
			ItemName:   name,
			TotalPrice: *entry.Price,
			Quantity:   qty,
			UnitPrice:  roundCents(*entry.Price / float64(qty)),
		})
	}
	return items, nil
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
