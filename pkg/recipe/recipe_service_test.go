package recipe

import (
	"context"
	"testing"

	"meal-planner/domain"
	"meal-planner/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type shoppingFieldsWrite struct {
	ingredientID uint
	name         *string
	qty          *float64
	unit         *string
}

type fakeRecipeRepo struct {
	recipes        []*entities.Recipe
	nextID         uint
	searched       string
	shoppingWrites []shoppingFieldsWrite
	unnormalized   []uint
}

func (f *fakeRecipeRepo) GetAll(_ context.Context) ([]*entities.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id uint) (*entities.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) Search(_ context.Context, query string) ([]*entities.Recipe, error) {
	f.searched = query
	return f.recipes, nil
}

func (f *fakeRecipeRepo) Add(_ context.Context, recipe *entities.Recipe) error {
	f.nextID++
	recipe.ID = f.nextID
	f.recipes = append(f.recipes, recipe)
	return nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, recipe *entities.Recipe) error {
	for i, r := range f.recipes {
		if r.ID == recipe.ID {
			f.recipes[i] = recipe
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uint) error {
	for i, r := range f.recipes {
		if r.ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeRepo) GetIngredientsByRecipeID(_ context.Context, recipeID uint) ([]entities.RecipeIngredient, error) {
	for _, r := range f.recipes {
		if r.ID == recipeID {
			return r.Ingredients, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) UpdateShoppingFields(_ context.Context, ingredientID uint, name *string, qty *float64, unit *string) error {
	f.shoppingWrites = append(f.shoppingWrites, shoppingFieldsWrite{ingredientID, name, qty, unit})
	return nil
}

func (f *fakeRecipeRepo) GetUnnormalizedRecipeIDs(_ context.Context) ([]uint, error) {
	return f.unnormalized, nil
}

type fakeAssistant struct {
	normalized   []domain.NormalizedIngredient
	normalizeErr error
	parsed       *entities.Recipe
	generated    []*entities.Recipe
	modified     *entities.Recipe
}

func (f *fakeAssistant) NormalizeIngredients(_ context.Context, _ []entities.RecipeIngredient) ([]domain.NormalizedIngredient, error) {
	return f.normalized, f.normalizeErr
}
func (f *fakeAssistant) ParseRecipeText(_ context.Context, _ string) (*entities.Recipe, error) {
	return f.parsed, nil
}
func (f *fakeAssistant) ParseRecipeURL(_ context.Context, _ string) (*entities.Recipe, error) {
	return f.parsed, nil
}
func (f *fakeAssistant) GenerateRecipe(_ context.Context, _ string) (*entities.Recipe, error) {
	return f.parsed, nil
}
func (f *fakeAssistant) BulkGenerateRecipes(_ context.Context, _ int, _ string) ([]*entities.Recipe, error) {
	return f.generated, nil
}
func (f *fakeAssistant) ModifyRecipe(_ context.Context, _ *entities.Recipe, _ string) (*entities.Recipe, error) {
	return f.modified, nil
}
func (f *fakeAssistant) SuggestWeek(_ context.Context, _ []*entities.Recipe, _ string) ([]domain.WeekSuggestion, error) {
	return nil, nil
}
func (f *fakeAssistant) EstimatePrices(_ context.Context, _ []domain.ShoppingItem) (map[string]float64, error) {
	return nil, nil
}
func (f *fakeAssistant) ParseReceiptImages(_ context.Context, _ []domain.ReceiptImage) ([]domain.ReceiptItem, error) {
	return nil, nil
}

func ptr[T any](v T) *T { return &v }

func TestAddRecipeDefaultsServings(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewRecipeService(repo, &fakeAssistant{})

	res, err := svc.AddRecipe(context.Background(), domain.RecipeRequest{
		Name: "  Chili  ",
		Ingredients: []domain.RecipeIngredientRequest{
			{Name: " black beans ", Quantity: ptr(2.0), Unit: ptr("cans")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chili", res.Name)
	assert.Equal(t, 4, res.Servings)
	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, "black beans", res.Ingredients[0].Name)
}

func TestGetRecipesSearchesWhenQueryGiven(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewRecipeService(repo, &fakeAssistant{})

	_, err := svc.GetRecipes(context.Background(), "  chicken ")
	require.NoError(t, err)
	assert.Equal(t, "chicken", repo.searched)

	_, err = svc.GetRecipes(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "chicken", repo.searched) // unchanged, GetAll path
}

func TestGetRecipeNotFound(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{}, &fakeAssistant{})
	_, err := svc.GetRecipe(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestNormalizeRecipePersistsOnlyNamedEntries(t *testing.T) {
	repo := &fakeRecipeRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.Recipe{
		Name: "Chili",
		Ingredients: []entities.RecipeIngredient{
			{ID: 10, Name: "2 cans black beans"},
			{ID: 11, Name: "salt to taste"},
		},
	}))

	ai := &fakeAssistant{
		normalized: []domain.NormalizedIngredient{
			{ShoppingName: ptr("canned black beans"), ShoppingQty: ptr(2.0), ShoppingUnit: ptr("cans")},
			{}, // skipped by the model
		},
	}
	svc := NewRecipeService(repo, ai)

	res, err := svc.NormalizeRecipe(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, repo.shoppingWrites, 1)
	assert.Equal(t, uint(10), repo.shoppingWrites[0].ingredientID)
	assert.Equal(t, "canned black beans", *repo.shoppingWrites[0].name)

	assert.Equal(t, "canned black beans", *res.Ingredients[0].ShoppingName)
	assert.Nil(t, res.Ingredients[1].ShoppingName)
}

func TestNormalizeRecipeFailureWritesNothing(t *testing.T) {
	repo := &fakeRecipeRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.Recipe{
		Name:        "Chili",
		Ingredients: []entities.RecipeIngredient{{ID: 10, Name: "beans"}},
	}))
	svc := NewRecipeService(repo, &fakeAssistant{normalizeErr: domain.ErrAIResponseInvalid})

	_, err := svc.NormalizeRecipe(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAIResponseInvalid)
	assert.Empty(t, repo.shoppingWrites)
}

func TestNormalizeAllRecipesSkipsFailures(t *testing.T) {
	repo := &fakeRecipeRepo{unnormalized: []uint{1, 2}}
	require.NoError(t, repo.Add(context.Background(), &entities.Recipe{
		Name:        "Chili",
		Ingredients: []entities.RecipeIngredient{{ID: 10, Name: "beans"}},
	}))
	// Recipe 2 does not exist, so its normalization fails and is skipped.
	ai := &fakeAssistant{
		normalized: []domain.NormalizedIngredient{
			{ShoppingName: ptr("canned beans")},
		},
	}
	svc := NewRecipeService(repo, ai)

	count, err := svc.NormalizeAllRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestParseTextPersistsRecipe(t *testing.T) {
	repo := &fakeRecipeRepo{}
	ai := &fakeAssistant{parsed: &entities.Recipe{Name: "Pancakes", Servings: 4}}
	svc := NewRecipeService(repo, ai)

	res, err := svc.ParseText(context.Background(), domain.ParseRecipeTextRequest{Text: "pancake recipe..."})
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", res.Name)
	assert.NotZero(t, res.ID)
	require.Len(t, repo.recipes, 1)
}

func TestBulkGeneratePersistsAll(t *testing.T) {
	repo := &fakeRecipeRepo{}
	ai := &fakeAssistant{generated: []*entities.Recipe{
		{Name: "A", Servings: 4},
		{Name: "B", Servings: 2},
	}}
	svc := NewRecipeService(repo, ai)

	res, err := svc.BulkGenerate(context.Background(), domain.BulkGenerateRecipesRequest{Count: 2})
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Len(t, repo.recipes, 2)
}

func TestModifyKeepsRecipeID(t *testing.T) {
	repo := &fakeRecipeRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.Recipe{Name: "Chili", Servings: 4}))
	ai := &fakeAssistant{modified: &entities.Recipe{Name: "Vegetarian Chili", Servings: 4}}
	svc := NewRecipeService(repo, ai)

	res, err := svc.Modify(context.Background(), 1, domain.ModifyRecipeRequest{Instruction: "make it vegetarian"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.ID)
	require.Len(t, repo.recipes, 1)
	assert.Equal(t, "Vegetarian Chili", repo.recipes[0].Name)
}

func TestDeleteRecipeNotFound(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{}, &fakeAssistant{})
	err := svc.DeleteRecipe(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
