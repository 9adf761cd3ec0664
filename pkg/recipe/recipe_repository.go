package recipe

import (
	"context"

	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		GetAll(ctx context.Context) ([]*entities.Recipe, error)
		GetByID(ctx context.Context, id uint) (*entities.Recipe, error)
		Search(ctx context.Context, query string) ([]*entities.Recipe, error)
		Add(ctx context.Context, recipe *entities.Recipe) error
		Update(ctx context.Context, recipe *entities.Recipe) error
		Delete(ctx context.Context, id uint) error
		GetIngredientsByRecipeID(ctx context.Context, recipeID uint) ([]entities.RecipeIngredient, error)
		UpdateShoppingFields(ctx context.Context, ingredientID uint, name *string, qty *float64, unit *string) error
		GetUnnormalizedRecipeIDs(ctx context.Context) ([]uint, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetAll(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).Preload("Ingredients").Order("name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Preload("Ingredients").Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Search(ctx context.Context, query string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).Preload("Ingredients").
		Where("name ILIKE ? OR description ILIKE ? OR tags ILIKE ?", pattern, pattern, pattern).
		Order("name asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Add(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update replaces the recipe's ingredient set wholesale: existing rows are
// deleted and the new set inserted with the recipe fields in one transaction.
func (r *recipeRepository) Update(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(recipe).Error
	})
}

// Delete removes the recipe; its ingredients cascade, and meal plan entries
// referencing it keep their row with a nulled recipe reference.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.MealPlanEntry{}).
			Where("recipe_id = ?", id).
			Update("recipe_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetIngredientsByRecipeID(ctx context.Context, recipeID uint) ([]entities.RecipeIngredient, error) {
	var ingredients []entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) UpdateShoppingFields(ctx context.Context, ingredientID uint, name *string, qty *float64, unit *string) error {
	return r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).
		Where("id = ?", ingredientID).
		Updates(map[string]interface{}{
			"shopping_name": name,
			"shopping_qty":  qty,
			"shopping_unit": unit,
		}).Error
}

func (r *recipeRepository) GetUnnormalizedRecipeIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).
		Distinct("recipe_id").
		Where("shopping_name IS NULL").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
