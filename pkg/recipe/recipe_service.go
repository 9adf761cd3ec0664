package recipe

import (
	"context"
	"errors"
	"strings"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/internal/utils"
	"meal-planner/pkg/assistant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, query string) ([]domain.RecipeResponse, error)
		GetRecipe(ctx context.Context, id uint) (domain.RecipeResponse, error)
		AddRecipe(ctx context.Context, req domain.RecipeRequest) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) error
		DeleteRecipe(ctx context.Context, id uint) error
		NormalizeRecipe(ctx context.Context, id uint) (domain.RecipeResponse, error)
		NormalizeAllRecipes(ctx context.Context) (int, error)
		ParseText(ctx context.Context, req domain.ParseRecipeTextRequest) (domain.RecipeResponse, error)
		ParseURL(ctx context.Context, req domain.ParseRecipeURLRequest) (domain.RecipeResponse, error)
		Generate(ctx context.Context, req domain.GenerateRecipeRequest) (domain.RecipeResponse, error)
		BulkGenerate(ctx context.Context, req domain.BulkGenerateRecipesRequest) ([]domain.RecipeResponse, error)
		Modify(ctx context.Context, id uint, req domain.ModifyRecipeRequest) (domain.RecipeResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		assistantService assistant.AssistantService
	}
)

func NewRecipeService(recipeRepository RecipeRepository, assistantService assistant.AssistantService) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		assistantService: assistantService,
	}
}

func toResponse(recipe *entities.Recipe) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			ID:             ing.ID,
			Name:           ing.Name,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			EstimatedPrice: ing.EstimatedPrice,
			ShoppingName:   ing.ShoppingName,
			ShoppingQty:    ing.ShoppingQty,
			ShoppingUnit:   ing.ShoppingUnit,
		})
	}
	return domain.RecipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Servings:     recipe.Servings,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Instructions: recipe.Instructions,
		SourceURL:    recipe.SourceURL,
		Tags:         recipe.Tags,
		Rating:       recipe.Rating,
		Ingredients:  ingredients,
	}
}

func fromRequest(req domain.RecipeRequest) *entities.Recipe {
	servings := req.Servings
	if servings <= 0 {
		servings = 4
	}
	ingredients := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, entities.RecipeIngredient{
			Name:           strings.TrimSpace(ing.Name),
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			EstimatedPrice: ing.EstimatedPrice,
		})
	}
	return &entities.Recipe{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Servings:     servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Instructions: req.Instructions,
		SourceURL:    req.SourceURL,
		Tags:         req.Tags,
		Rating:       req.Rating,
		Ingredients:  ingredients,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, query string) ([]domain.RecipeResponse, error) {
	var (
		recipes []*entities.Recipe
		err     error
	)
	if strings.TrimSpace(query) != "" {
		recipes, err = s.recipeRepository.Search(ctx, strings.TrimSpace(query))
	} else {
		recipes, err = s.recipeRepository.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) AddRecipe(ctx context.Context, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	recipe := fromRequest(req)
	if err := s.recipeRepository.Add(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest) error {
	if _, err := s.recipeRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	recipe := fromRequest(req)
	recipe.ID = id
	return s.recipeRepository.Update(ctx, recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint) error {
	if _, err := s.recipeRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepository.Delete(ctx, id)
}

// NormalizeRecipe asks the assistant for the purchasable form of each
// ingredient and persists the result. Entries the assistant skipped keep
// their shopping fields null so they stay eligible for a later pass.
func (s *recipeService) NormalizeRecipe(ctx context.Context, id uint) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	normalized, err := s.assistantService.NormalizeIngredients(ctx, recipe.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	for i, entry := range normalized {
		if entry.ShoppingName == nil {
			continue
		}
		ing := recipe.Ingredients[i]
		if err := s.recipeRepository.UpdateShoppingFields(ctx, ing.ID, entry.ShoppingName, entry.ShoppingQty, entry.ShoppingUnit); err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.Ingredients[i].ShoppingName = entry.ShoppingName
		recipe.Ingredients[i].ShoppingQty = entry.ShoppingQty
		recipe.Ingredients[i].ShoppingUnit = entry.ShoppingUnit
	}
	return toResponse(recipe), nil
}

// NormalizeAllRecipes normalizes every recipe that still has ingredients
// without shopping fields. Failures on individual recipes are logged and
// skipped so one bad response does not abort the batch.
func (s *recipeService) NormalizeAllRecipes(ctx context.Context) (int, error) {
	ids, err := s.recipeRepository.GetUnnormalizedRecipeIDs(ctx)
	if err != nil {
		return 0, err
	}

	normalized := 0
	for _, id := range ids {
		if _, err := s.NormalizeRecipe(ctx, id); err != nil {
			utils.Logger.Warn("recipe normalization failed",
				zap.Uint("recipe_id", id),
				zap.Error(err),
			)
			continue
		}
		normalized++
	}
	return normalized, nil
}

func (s *recipeService) ParseText(ctx context.Context, req domain.ParseRecipeTextRequest) (domain.RecipeResponse, error) {
	recipe, err := s.assistantService.ParseRecipeText(ctx, req.Text)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.recipeRepository.Add(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) ParseURL(ctx context.Context, req domain.ParseRecipeURLRequest) (domain.RecipeResponse, error) {
	recipe, err := s.assistantService.ParseRecipeURL(ctx, req.URL)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.recipeRepository.Add(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) Generate(ctx context.Context, req domain.GenerateRecipeRequest) (domain.RecipeResponse, error) {
	recipe, err := s.assistantService.GenerateRecipe(ctx, req.Preferences)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.recipeRepository.Add(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) BulkGenerate(ctx context.Context, req domain.BulkGenerateRecipesRequest) ([]domain.RecipeResponse, error) {
	recipes, err := s.assistantService.BulkGenerateRecipes(ctx, req.Count, req.Preferences)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		if err := s.recipeRepository.Add(ctx, recipe); err != nil {
			return nil, err
		}
		response = append(response, toResponse(recipe))
	}
	return response, nil
}

// Modify rewrites the stored recipe in place with the assistant's result.
func (s *recipeService) Modify(ctx context.Context, id uint, req domain.ModifyRecipeRequest) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	modified, err := s.assistantService.ModifyRecipe(ctx, recipe, req.Instruction)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	modified.ID = recipe.ID
	if err := s.recipeRepository.Update(ctx, modified); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(modified), nil
}
