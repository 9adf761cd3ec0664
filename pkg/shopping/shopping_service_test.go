package shopping

import (
	"context"
	"testing"

	"meal-planner/domain"
	"meal-planner/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMealPlanRepo struct {
	entries []*entities.MealPlanEntry
}

func (f *fakeMealPlanRepo) GetByDateSlot(_ context.Context, date, slot string) (*entities.MealPlanEntry, error) {
	for _, e := range f.entries {
		if e.Date == date && e.MealSlot == slot {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeMealPlanRepo) GetInRange(_ context.Context, start, end string) ([]*entities.MealPlanEntry, error) {
	var out []*entities.MealPlanEntry
	for _, e := range f.entries {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMealPlanRepo) Add(_ context.Context, entry *entities.MealPlanEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeMealPlanRepo) Update(_ context.Context, _ *entities.MealPlanEntry) error { return nil }

func (f *fakeMealPlanRepo) DeleteByDateSlot(_ context.Context, _, _ string) error { return nil }

type fakeRecipeRepo struct {
	ingredients map[uint][]entities.RecipeIngredient
}

func (f *fakeRecipeRepo) GetAll(_ context.Context) ([]*entities.Recipe, error)        { return nil, nil }
func (f *fakeRecipeRepo) GetByID(_ context.Context, _ uint) (*entities.Recipe, error) { return nil, nil }
func (f *fakeRecipeRepo) Search(_ context.Context, _ string) ([]*entities.Recipe, error) {
	return nil, nil
}
func (f *fakeRecipeRepo) Add(_ context.Context, _ *entities.Recipe) error    { return nil }
func (f *fakeRecipeRepo) Update(_ context.Context, _ *entities.Recipe) error { return nil }
func (f *fakeRecipeRepo) Delete(_ context.Context, _ uint) error             { return nil }
func (f *fakeRecipeRepo) GetIngredientsByRecipeID(_ context.Context, recipeID uint) ([]entities.RecipeIngredient, error) {
	return f.ingredients[recipeID], nil
}
func (f *fakeRecipeRepo) UpdateShoppingFields(_ context.Context, _ uint, _ *string, _ *float64, _ *string) error {
	return nil
}
func (f *fakeRecipeRepo) GetUnnormalizedRecipeIDs(_ context.Context) ([]uint, error) {
	return nil, nil
}

type fakePantryRepo struct {
	items []*entities.PantryItem
}

func (f *fakePantryRepo) GetAll(_ context.Context, _, _ string) ([]*entities.PantryItem, error) {
	return f.items, nil
}
func (f *fakePantryRepo) GetByID(_ context.Context, _ uint) (*entities.PantryItem, error) {
	return nil, nil
}
func (f *fakePantryRepo) GetByBarcode(_ context.Context, _ string) (*entities.PantryItem, error) {
	return nil, nil
}
func (f *fakePantryRepo) GetByNameAndBrand(_ context.Context, _ string, _ *string) (*entities.PantryItem, error) {
	return nil, nil
}
func (f *fakePantryRepo) Add(_ context.Context, _ *entities.PantryItem) error    { return nil }
func (f *fakePantryRepo) Update(_ context.Context, _ *entities.PantryItem) error { return nil }
func (f *fakePantryRepo) Delete(_ context.Context, _ uint) error                 { return nil }
func (f *fakePantryRepo) DeleteMany(_ context.Context, _ []uint) (int64, error)  { return 0, nil }
func (f *fakePantryRepo) GetExpiringBetween(_ context.Context, _, _ string) ([]*entities.PantryItem, error) {
	return nil, nil
}
func (f *fakePantryRepo) GetLocations(_ context.Context) ([]string, error)  { return nil, nil }
func (f *fakePantryRepo) GetCategories(_ context.Context) ([]string, error) { return nil, nil }

type fakeStapleRepo struct {
	staples []*entities.Staple
}

func (f *fakeStapleRepo) GetAll(_ context.Context) ([]*entities.Staple, error) {
	return f.staples, nil
}
func (f *fakeStapleRepo) GetByID(_ context.Context, _ uint) (*entities.Staple, error) {
	return nil, nil
}
func (f *fakeStapleRepo) GetByName(_ context.Context, _ string) (*entities.Staple, error) {
	return nil, nil
}
func (f *fakeStapleRepo) GetByNeedToBuy(_ context.Context, need bool) ([]*entities.Staple, error) {
	var out []*entities.Staple
	for _, s := range f.staples {
		if s.NeedToBuy == need {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeStapleRepo) Add(_ context.Context, _ *entities.Staple) error    { return nil }
func (f *fakeStapleRepo) Update(_ context.Context, _ *entities.Staple) error { return nil }
func (f *fakeStapleRepo) Delete(_ context.Context, _ uint) error             { return nil }

type fakeKnownPriceRepo struct {
	prices   []*entities.KnownPrice
	upserted map[string]float64
}

func (f *fakeKnownPriceRepo) GetAll(_ context.Context) ([]*entities.KnownPrice, error) {
	return f.prices, nil
}
func (f *fakeKnownPriceRepo) GetByName(_ context.Context, _ string) (*entities.KnownPrice, error) {
	return nil, nil
}
func (f *fakeKnownPriceRepo) Upsert(_ context.Context, itemName string, unitPrice float64, _ *string, _ *uint) error {
	if f.upserted == nil {
		f.upserted = map[string]float64{}
	}
	f.upserted[itemName] = unitPrice
	return nil
}
func (f *fakeKnownPriceRepo) Delete(_ context.Context, _ uint) error { return nil }

type fakeSettingRepo struct {
	values map[string]string
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}
func (f *fakeSettingRepo) Set(_ context.Context, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}
func (f *fakeSettingRepo) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

type fakePricer struct {
	estimates map[string]float64
}

func (f *fakePricer) EstimatePrices(_ context.Context, _ []domain.ShoppingItem) (map[string]float64, error) {
	return f.estimates, nil
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	mealPlans   *fakeMealPlanRepo
	recipes     *fakeRecipeRepo
	pantry      *fakePantryRepo
	staples     *fakeStapleRepo
	knownPrices *fakeKnownPriceRepo
	settings    *fakeSettingRepo
	pricer      *fakePricer
	service     *shoppingService
}

func newFixture() *fixture {
	f := &fixture{
		mealPlans:   &fakeMealPlanRepo{},
		recipes:     &fakeRecipeRepo{ingredients: map[uint][]entities.RecipeIngredient{}},
		pantry:      &fakePantryRepo{},
		staples:     &fakeStapleRepo{},
		knownPrices: &fakeKnownPriceRepo{},
		settings:    &fakeSettingRepo{},
		pricer:      &fakePricer{},
	}
	svc := NewShoppingService(f.mealPlans, f.recipes, f.pantry, f.staples, f.knownPrices, f.settings, f.pricer)
	f.service = svc.(*shoppingService)
	f.service.sendMail = func(_, _, _ string) error { return nil }
	return f
}

func (f *fixture) planMeal(date, slot string, recipeID uint, servings int) {
	id := recipeID
	f.mealPlans.entries = append(f.mealPlans.entries, &entities.MealPlanEntry{
		Date:     date,
		MealSlot: slot,
		RecipeID: &id,
		Servings: servings,
	})
}

func weekRequest() domain.GenerateListRequest {
	return domain.GenerateListRequest{StartDate: "2026-08-17", EndDate: "2026-08-23"}
}

func TestGenerateAggregatesCaseInsensitively(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "Chicken Breast", Quantity: ptr(1.0), Unit: ptr("lbs")},
	}
	f.recipes.ingredients[2] = []entities.RecipeIngredient{
		{Name: "  chicken breast ", Quantity: ptr(2.0), Unit: ptr("LBS")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)
	f.planMeal("2026-08-18", "Dinner", 2, 1)

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	items := res.Stores[domain.NoStoreGroup]
	require.Len(t, items, 1)
	assert.Equal(t, "Chicken Breast", items[0].Name)
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, "lbs", items[0].Unit)
}

func TestGenerateMultipliesByServings(t *testing.T) {
	f := newFixture()
	// Normalized to 2 cans per batch; planning 3 servings multiplies the
	// purchase quantity as-is.
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{
			Name:         "30oz black beans, drained",
			Quantity:     ptr(30.0),
			Unit:         ptr("oz"),
			ShoppingName: ptr("canned black beans"),
			ShoppingQty:  ptr(2.0),
			ShoppingUnit: ptr("15oz cans"),
		},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 3)

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	items := res.Stores[domain.NoStoreGroup]
	require.Len(t, items, 1)
	assert.Equal(t, "Canned Black Beans", items[0].Name)
	assert.Equal(t, 6.0, items[0].Quantity)
	assert.Equal(t, "15oz cans", items[0].Unit)
}

func TestGeneratePantrySubtraction(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "rice", Quantity: ptr(3.0), Unit: ptr("cups")},
		{Name: "milk", Quantity: ptr(1.0), Unit: ptr("gallon")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)
	f.pantry.items = []*entities.PantryItem{
		{Name: "Rice", Quantity: 1},
		{Name: "Milk", Quantity: 4},
	}

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	items := res.Stores[domain.NoStoreGroup]
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, 2.0, items[0].Quantity)

	// With use_pantry off both lines appear at full quantity.
	res, err = f.service.Generate(context.Background(), domain.GenerateListRequest{
		StartDate: "2026-08-17",
		EndDate:   "2026-08-23",
		UsePantry: ptr(false),
	})
	require.NoError(t, err)
	assert.Len(t, res.Stores[domain.NoStoreGroup], 2)
}

func TestGenerateExcludesOnHandStaples(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "Salt", Quantity: ptr(1.0), Unit: ptr("tsp")},
		{Name: "pepper", Quantity: ptr(1.0), Unit: ptr("tsp")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)
	f.staples.staples = []*entities.Staple{
		{Name: "salt", NeedToBuy: false},
	}

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	items := res.Stores[domain.NoStoreGroup]
	require.Len(t, items, 1)
	assert.Equal(t, "Pepper", items[0].Name)
}

func TestGenerateAppendsNeededStaples(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "eggs", Quantity: ptr(2.0), Unit: ptr("each")},
	}
	f.planMeal("2026-08-17", "Breakfast", 1, 1)
	f.staples.staples = []*entities.Staple{
		{Name: "Coffee", NeedToBuy: true},
		{Name: "Olive Oil", NeedToBuy: true, PreferredStore: &entities.Store{Name: "Costco"}},
		// Already covered by a recipe line, must not be duplicated.
		{Name: "Eggs", NeedToBuy: true},
	}
	f.knownPrices.prices = []*entities.KnownPrice{
		{ItemName: "Coffee", UnitPrice: 12.99},
	}

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	stapleItems := res.Stores[domain.StapleGroup]
	require.Len(t, stapleItems, 1)
	assert.Equal(t, "Coffee", stapleItems[0].Name)
	assert.Equal(t, 0.0, stapleItems[0].Quantity)
	assert.Equal(t, "", stapleItems[0].Unit)
	require.NotNil(t, stapleItems[0].EstimatedCost)
	assert.Equal(t, 12.99, *stapleItems[0].EstimatedCost)

	costcoItems := res.Stores["Costco"]
	require.Len(t, costcoItems, 1)
	assert.Equal(t, "Olive Oil", costcoItems[0].Name)
	assert.Nil(t, costcoItems[0].EstimatedCost)

	// Eggs only once, from the recipe.
	eggs := 0
	for _, items := range res.Stores {
		for _, item := range items {
			if item.Name == "Eggs" {
				eggs++
			}
		}
	}
	assert.Equal(t, 1, eggs)
}

func TestGeneratePricePrecedence(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "butter", Quantity: ptr(2.0), Unit: ptr("lbs"), EstimatedPrice: ptr(3.50)},
		{Name: "flour", Quantity: ptr(1.0), Unit: ptr("lbs"), EstimatedPrice: ptr(2.00)},
		{Name: "sugar", Quantity: ptr(1.0), Unit: ptr("lbs")},
		{Name: "yeast", Quantity: ptr(1.0), Unit: ptr("oz")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)
	f.knownPrices.prices = []*entities.KnownPrice{
		{ItemName: "Butter", UnitPrice: 4.00},
	}
	f.pantry.items = []*entities.PantryItem{
		{Name: "sugar", Quantity: 0, EstimatedPrice: ptr(1.25)},
	}

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	costs := map[string]*float64{}
	for _, item := range res.Stores[domain.NoStoreGroup] {
		costs[item.Name] = item.EstimatedCost
	}

	// Known price beats the recipe estimate: 4.00 * 2.
	require.NotNil(t, costs["Butter"])
	assert.Equal(t, 8.00, *costs["Butter"])
	// Recipe estimate when nothing else matches.
	require.NotNil(t, costs["Flour"])
	assert.Equal(t, 2.00, *costs["Flour"])
	// Pantry estimate as the last fallback.
	require.NotNil(t, costs["Sugar"])
	assert.Equal(t, 1.25, *costs["Sugar"])
	// Unpriced lines stay unpriced.
	assert.Nil(t, costs["Yeast"])
}

func TestGenerateGroupsByPreferredStore(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "milk", Quantity: ptr(1.0), Unit: ptr("gallon")},
		{Name: "bread", Quantity: ptr(1.0), Unit: ptr("loaf")},
	}
	f.planMeal("2026-08-17", "Breakfast", 1, 1)
	f.pantry.items = []*entities.PantryItem{
		{Name: "Milk", Quantity: 0, PreferredStore: &entities.Store{Name: "Safeway"}},
	}

	res, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)

	require.Len(t, res.Stores["Safeway"], 1)
	assert.Equal(t, "Milk", res.Stores["Safeway"][0].Name)
	require.Len(t, res.Stores[domain.NoStoreGroup], 1)
	assert.Equal(t, "Bread", res.Stores[domain.NoStoreGroup][0].Name)
}

func TestGenerateStartAfterEndIsEmpty(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "rice", Quantity: ptr(1.0), Unit: ptr("cups")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)

	res, err := f.service.Generate(context.Background(), domain.GenerateListRequest{
		StartDate: "2026-08-23",
		EndDate:   "2026-08-17",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Stores)
	assert.Equal(t, "No items needed.", res.PlainText)
}

func TestGenerateIsIdempotent(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "rice", Quantity: ptr(2.0), Unit: ptr("cups")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 2)

	first, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)
	second, err := f.service.Generate(context.Background(), weekRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatLayout(t *testing.T) {
	f := newFixture()
	list := domain.ShoppingList{
		"Safeway": {
			{Name: "Chicken Breast", Quantity: 2, Unit: "lbs", EstimatedCost: ptr(9.98)},
			{Name: "Coffee", Quantity: 0, Unit: "", EstimatedCost: ptr(12.99)},
		},
		"No Store Assigned": {
			{Name: "Garlic", Quantity: 1, Unit: "head"},
		},
	}

	text := f.service.Format(list)
	expected := "=== No Store Assigned ===\n" +
		"  [ ] Garlic — 1 head\n" +
		"\n" +
		"=== Safeway ===\n" +
		"  [ ] Chicken Breast — 2 lbs  $9.98\n" +
		"  [ ] Coffee  $12.99\n" +
		"  Store subtotal: $22.97\n" +
		"\n" +
		"Estimated total: $22.97"
	assert.Equal(t, expected, text)
}

func TestFormatEmpty(t *testing.T) {
	f := newFixture()
	assert.Equal(t, "No items needed.", f.service.Format(domain.ShoppingList{}))
}

func TestSaveAndLoadCachedList(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "rice", Quantity: ptr(2.0), Unit: ptr("cups")},
	}
	f.mealPlans.entries = append(f.mealPlans.entries, &entities.MealPlanEntry{
		Date:     "2026-08-17",
		MealSlot: "Dinner",
		RecipeID: ptr(uint(1)),
		Servings: 1,
		Recipe:   &entities.Recipe{Name: "Fried Rice"},
	})

	saved, err := f.service.SaveCached(context.Background(), weekRequest())
	require.NoError(t, err)
	require.Len(t, saved.IngredientSources["rice"], 1)
	assert.Equal(t, "Fried Rice", saved.IngredientSources["rice"][0].RecipeName)

	loaded, err := f.service.LoadCached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.ShoppingData, loaded.ShoppingData)
	assert.Equal(t, "2026-08-17", loaded.StartDate)
	assert.True(t, loaded.UsePantry)

	require.NoError(t, f.service.ClearCached(context.Background()))
	_, err = f.service.LoadCached(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCachedList)
}

func TestLoadCachedWithoutSave(t *testing.T) {
	f := newFixture()
	_, err := f.service.LoadCached(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCachedList)
}

func TestEmailListSendsPlainText(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "rice", Quantity: ptr(2.0), Unit: ptr("cups")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)

	var gotTo, gotBody string
	f.service.sendMail = func(to, _, body string) error {
		gotTo = to
		gotBody = body
		return nil
	}

	err := f.service.EmailList(context.Background(), domain.EmailListRequest{
		To:        "cook@example.com",
		StartDate: "2026-08-17",
		EndDate:   "2026-08-23",
	})
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", gotTo)
	assert.Contains(t, gotBody, "[ ] Rice — 2 cups")
}

func TestEstimatePricesRecordsKnownPrices(t *testing.T) {
	f := newFixture()
	f.recipes.ingredients[1] = []entities.RecipeIngredient{
		{Name: "saffron", Quantity: ptr(1.0), Unit: ptr("g")},
	}
	f.planMeal("2026-08-17", "Dinner", 1, 1)
	f.pricer.estimates = map[string]float64{"saffron": 9.99}

	estimates, err := f.service.EstimatePrices(context.Background(), weekRequest())
	require.NoError(t, err)
	assert.Equal(t, 9.99, estimates["saffron"])
	assert.Equal(t, 9.99, f.knownPrices.upserted["saffron"])
}
