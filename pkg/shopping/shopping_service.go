package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/internal/utils"
	"meal-planner/internal/utils/mailing"
	"meal-planner/pkg/knownprice"
	"meal-planner/pkg/mealplan"
	"meal-planner/pkg/pantry"
	"meal-planner/pkg/recipe"
	"meal-planner/pkg/setting"
	"meal-planner/pkg/staple"

	"go.uber.org/zap"
)

// cacheKey is the settings row holding the last generated shopping list.
const cacheKey = "saved_shopping_list"

type (
	ShoppingService interface {
		Generate(ctx context.Context, req domain.GenerateListRequest) (domain.GenerateListResponse, error)
		Sources(ctx context.Context, start, end string) (map[string][]domain.IngredientSource, error)
		Format(list domain.ShoppingList) string
		SaveCached(ctx context.Context, req domain.GenerateListRequest) (domain.CachedShoppingList, error)
		LoadCached(ctx context.Context) (domain.CachedShoppingList, error)
		ClearCached(ctx context.Context) error
		EmailList(ctx context.Context, req domain.EmailListRequest) error
		EstimatePrices(ctx context.Context, req domain.GenerateListRequest) (map[string]float64, error)
	}

	shoppingService struct {
		mealPlanRepository   mealplan.MealPlanRepository
		recipeRepository     recipe.RecipeRepository
		pantryRepository     pantry.PantryRepository
		stapleRepository     staple.StapleRepository
		knownPriceRepository knownprice.KnownPriceRepository
		settingRepository    setting.SettingRepository
		assistantService     AssistantPricer

		// sendMail is swappable for tests; defaults to the SMTP mailer.
		sendMail func(to, subject, body string) error
	}

	// AssistantPricer is the slice of the assistant the shopping service
	// needs for price estimation.
	AssistantPricer interface {
		EstimatePrices(ctx context.Context, items []domain.ShoppingItem) (map[string]float64, error)
	}

	// aggregationKey identifies one shopping line: folded purchasable name
	// plus folded unit.
	aggregationKey struct {
		name string
		unit string
	}
)

func NewShoppingService(
	mealPlanRepository mealplan.MealPlanRepository,
	recipeRepository recipe.RecipeRepository,
	pantryRepository pantry.PantryRepository,
	stapleRepository staple.StapleRepository,
	knownPriceRepository knownprice.KnownPriceRepository,
	settingRepository setting.SettingRepository,
	assistantService AssistantPricer,
) ShoppingService {
	return &shoppingService{
		mealPlanRepository:   mealPlanRepository,
		recipeRepository:     recipeRepository,
		pantryRepository:     pantryRepository,
		stapleRepository:     stapleRepository,
		knownPriceRepository: knownPriceRepository,
		settingRepository:    settingRepository,
		assistantService:     assistantService,
		sendMail:             mailing.SendMail,
	}
}

// shoppingFields resolves the purchasable form of an ingredient: normalized
// shopping fields when present, raw recipe fields otherwise.
func shoppingFields(ing entities.RecipeIngredient) (name, unit string, qty float64) {
	rawName := ing.Name
	if ing.ShoppingName != nil {
		rawName = *ing.ShoppingName
	}
	name = utils.FoldName(rawName)

	rawUnit := ""
	if ing.ShoppingUnit != nil {
		rawUnit = *ing.ShoppingUnit
	} else if ing.Unit != nil {
		rawUnit = *ing.Unit
	}
	unit = utils.FoldName(rawUnit)

	switch {
	case ing.ShoppingQty != nil:
		qty = *ing.ShoppingQty
	case ing.Quantity != nil:
		qty = *ing.Quantity
	}
	return name, unit, qty
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}

// Generate builds the shopping list for a date range.
//
// Quantities from every planned meal are summed per (name, unit) key, each
// occurrence multiplied by the entry's servings count. Staples marked as on
// hand are excluded outright. With use_pantry on (the default), on-hand
// pantry quantities are subtracted by name and lines at or below zero drop
// out. A start date after the end date simply yields an empty list.
func (s *shoppingService) Generate(ctx context.Context, req domain.GenerateListRequest) (domain.GenerateListResponse, error) {
	usePantry := req.UsePantry == nil || *req.UsePantry

	response := domain.GenerateListResponse{
		Stores:    domain.ShoppingList{},
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		UsePantry: usePantry,
	}

	entries, err := s.mealPlanRepository.GetInRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return domain.GenerateListResponse{}, err
	}
	if len(entries) == 0 {
		response.PlainText = s.Format(response.Stores)
		return response, nil
	}

	required := map[aggregationKey]float64{}
	recipePrices := map[aggregationKey]float64{}
	var keyOrder []aggregationKey

	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}
		ingredients, err := s.recipeRepository.GetIngredientsByRecipeID(ctx, *entry.RecipeID)
		if err != nil {
			return domain.GenerateListResponse{}, err
		}
		for _, ing := range ingredients {
			name, unit, qty := shoppingFields(ing)
			key := aggregationKey{name: name, unit: unit}
			if _, seen := required[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			required[key] += qty * float64(entry.Servings)
			if ing.EstimatedPrice != nil {
				if _, ok := recipePrices[key]; !ok {
					recipePrices[key] = *ing.EstimatedPrice
				}
			}
		}
	}

	if len(required) == 0 {
		response.PlainText = s.Format(response.Stores)
		return response, nil
	}

	pantryItems, err := s.pantryRepository.GetAll(ctx, "", "")
	if err != nil {
		return domain.GenerateListResponse{}, err
	}
	pantryQty := map[string]float64{}
	pantryPrices := map[string]float64{}
	pantryStores := map[string]string{}
	for _, item := range pantryItems {
		name := utils.FoldName(item.Name)
		if _, ok := pantryQty[name]; !ok {
			pantryQty[name] = item.Quantity
		}
		if item.EstimatedPrice != nil {
			if _, ok := pantryPrices[name]; !ok {
				pantryPrices[name] = *item.EstimatedPrice
			}
		}
		if item.PreferredStore != nil {
			if _, ok := pantryStores[name]; !ok {
				pantryStores[name] = item.PreferredStore.Name
			}
		}
	}

	staples, err := s.stapleRepository.GetAll(ctx)
	if err != nil {
		return domain.GenerateListResponse{}, err
	}
	onHandStaples := map[string]bool{}
	for _, st := range staples {
		if !st.NeedToBuy {
			onHandStaples[utils.FoldName(st.Name)] = true
		}
	}

	knownPriceRows, err := s.knownPriceRepository.GetAll(ctx)
	if err != nil {
		return domain.GenerateListResponse{}, err
	}
	knownPrices := map[string]float64{}
	for _, kp := range knownPriceRows {
		knownPrices[utils.FoldName(kp.ItemName)] = kp.UnitPrice
	}

	resolvers := []priceResolver{
		knownPriceResolver(knownPrices),
		recipePriceResolver(recipePrices),
		pantryPriceResolver(pantryPrices),
	}

	stores := domain.ShoppingList{}
	for _, key := range keyOrder {
		if onHandStaples[key.name] {
			continue
		}

		buyQty := required[key]
		if usePantry {
			buyQty -= pantryQty[key.name]
			if buyQty <= 0 {
				continue
			}
		}

		storeName := pantryStores[key.name]
		if storeName == "" {
			storeName = domain.NoStoreGroup
		}

		var cost *float64
		if price := resolvePrice(resolvers, key.name, key.unit); price != nil {
			rounded := roundCents(*price * buyQty)
			cost = &rounded
		}

		stores[storeName] = append(stores[storeName], domain.ShoppingItem{
			Name:          utils.TitleCase(key.name),
			Quantity:      roundCents(buyQty),
			Unit:          key.unit,
			EstimatedCost: cost,
		})
	}

	// Staples flagged as needed are appended with no quantity, unless a
	// recipe already put the item on the list.
	for _, st := range staples {
		if !st.NeedToBuy {
			continue
		}
		stapleName := utils.FoldName(st.Name)
		alreadyListed := false
		for _, items := range stores {
			for _, item := range items {
				if utils.FoldName(item.Name) == stapleName {
					alreadyListed = true
					break
				}
			}
			if alreadyListed {
				break
			}
		}
		if alreadyListed {
			continue
		}

		storeName := domain.StapleGroup
		if st.PreferredStore != nil {
			storeName = st.PreferredStore.Name
		}
		var cost *float64
		if price, ok := knownPrices[stapleName]; ok {
			cost = &price
		}
		stores[storeName] = append(stores[storeName], domain.ShoppingItem{
			Name:          st.Name,
			Quantity:      0,
			Unit:          "",
			EstimatedCost: cost,
		})
	}

	for storeName := range stores {
		items := stores[storeName]
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		stores[storeName] = items
	}

	response.Stores = stores
	response.PlainText = s.Format(stores)
	return response, nil
}

// Sources maps each aggregated ingredient name to the planned meals that
// contributed quantity to it.
func (s *shoppingService) Sources(ctx context.Context, start, end string) (map[string][]domain.IngredientSource, error) {
	entries, err := s.mealPlanRepository.GetInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sources := map[string][]domain.IngredientSource{}
	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}
		ingredients, err := s.recipeRepository.GetIngredientsByRecipeID(ctx, *entry.RecipeID)
		if err != nil {
			return nil, err
		}

		recipeName := "Unknown Recipe"
		if entry.Recipe != nil {
			recipeName = entry.Recipe.Name
		}

		for _, ing := range ingredients {
			name, unit, qty := shoppingFields(ing)
			sources[name] = append(sources[name], domain.IngredientSource{
				RecipeID:   *entry.RecipeID,
				RecipeName: recipeName,
				Date:       entry.Date,
				MealSlot:   entry.MealSlot,
				Quantity:   qty * float64(entry.Servings),
				Unit:       unit,
			})
		}
	}
	return sources, nil
}

func formatQty(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Format renders the list as plain text for export, the clipboard, or email.
func (s *shoppingService) Format(list domain.ShoppingList) string {
	if len(list) == 0 {
		return "No items needed."
	}

	storeNames := make([]string, 0, len(list))
	for name := range list {
		storeNames = append(storeNames, name)
	}
	sort.Strings(storeNames)

	var lines []string
	grandTotal := 0.0
	hasPricedStores := false

	for _, storeName := range storeNames {
		lines = append(lines, fmt.Sprintf("=== %s ===", storeName))
		subtotal := 0.0
		hasPriced := false

		for _, item := range list[storeName] {
			line := "  [ ] " + item.Name
			if item.Quantity > 0 {
				line += " — " + strings.TrimSpace(formatQty(item.Quantity)+" "+item.Unit)
			}
			if item.EstimatedCost != nil {
				line += fmt.Sprintf("  $%.2f", *item.EstimatedCost)
				subtotal += *item.EstimatedCost
				hasPriced = true
			}
			lines = append(lines, line)
		}

		if hasPriced {
			lines = append(lines, fmt.Sprintf("  Store subtotal: $%.2f", subtotal))
			grandTotal += subtotal
			hasPricedStores = true
		}
		lines = append(lines, "")
	}

	if hasPricedStores {
		lines = append(lines, fmt.Sprintf("Estimated total: $%.2f", grandTotal))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SaveCached regenerates the list for the range and persists it, together
// with its ingredient sources, as a JSON settings row.
func (s *shoppingService) SaveCached(ctx context.Context, req domain.GenerateListRequest) (domain.CachedShoppingList, error) {
	generated, err := s.Generate(ctx, req)
	if err != nil {
		return domain.CachedShoppingList{}, err
	}
	sources, err := s.Sources(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return domain.CachedShoppingList{}, err
	}

	cached := domain.CachedShoppingList{
		ShoppingData:      generated.Stores,
		IngredientSources: sources,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		UsePantry:         generated.UsePantry,
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return domain.CachedShoppingList{}, err
	}
	if err := s.settingRepository.Set(ctx, cacheKey, string(payload)); err != nil {
		return domain.CachedShoppingList{}, err
	}
	return cached, nil
}

func (s *shoppingService) LoadCached(ctx context.Context) (domain.CachedShoppingList, error) {
	raw, err := s.settingRepository.Get(ctx, cacheKey)
	if err != nil {
		return domain.CachedShoppingList{}, err
	}
	if raw == "" {
		return domain.CachedShoppingList{}, domain.ErrNoCachedList
	}

	var cached domain.CachedShoppingList
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		utils.Logger.Warn("discarding unreadable cached shopping list", zap.Error(err))
		return domain.CachedShoppingList{}, domain.ErrNoCachedList
	}
	return cached, nil
}

func (s *shoppingService) ClearCached(ctx context.Context) error {
	return s.settingRepository.Set(ctx, cacheKey, "")
}

// EmailList generates the list for the range and mails the plain-text
// rendering.
func (s *shoppingService) EmailList(ctx context.Context, req domain.EmailListRequest) error {
	generated, err := s.Generate(ctx, domain.GenerateListRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		UsePantry: req.UsePantry,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Shopping list %s to %s", req.StartDate, req.EndDate)
	return s.sendMail(req.To, subject, generated.PlainText)
}

// EstimatePrices asks the assistant for unit prices of every unpriced line
// in the generated list and records the answers as known prices, so the next
// generation resolves them.
func (s *shoppingService) EstimatePrices(ctx context.Context, req domain.GenerateListRequest) (map[string]float64, error) {
	generated, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var unpriced []domain.ShoppingItem
	for _, items := range generated.Stores {
		for _, item := range items {
			if item.EstimatedCost == nil {
				unpriced = append(unpriced, item)
			}
		}
	}
	if len(unpriced) == 0 {
		return map[string]float64{}, nil
	}

	estimates, err := s.assistantService.EstimatePrices(ctx, unpriced)
	if err != nil {
		return nil, err
	}

	for name, price := range estimates {
		if err := s.knownPriceRepository.Upsert(ctx, name, price, nil, nil); err != nil {
			return nil, err
		}
	}
	return estimates, nil
}
