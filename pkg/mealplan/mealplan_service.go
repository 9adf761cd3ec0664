package mealplan

import (
	"context"
	"strings"
	"time"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/pkg/assistant"
	"meal-planner/pkg/recipe"
)

const dateLayout = "2006-01-02"

type (
	MealPlanService interface {
		WeekStart(forDate time.Time) time.Time
		GetWeek(ctx context.Context, start string) (domain.WeekResponse, error)
		SetMeal(ctx context.Context, req domain.SetMealRequest) error
		ClearMeal(ctx context.Context, req domain.ClearMealRequest) error
		GetMealsInRange(ctx context.Context, start, end string) ([]domain.MealPlanEntryResponse, error)
		SuggestWeek(ctx context.Context, req domain.SuggestWeekRequest) ([]domain.WeekSuggestion, error)
		ApplyWeek(ctx context.Context, req domain.ApplyWeekRequest) (int, error)
	}

	mealPlanService struct {
		mealPlanRepository MealPlanRepository
		recipeRepository   recipe.RecipeRepository
		assistantService   assistant.AssistantService
	}
)

func NewMealPlanService(
	mealPlanRepository MealPlanRepository,
	recipeRepository recipe.RecipeRepository,
	assistantService assistant.AssistantService,
) MealPlanService {
	return &mealPlanService{
		mealPlanRepository: mealPlanRepository,
		recipeRepository:   recipeRepository,
		assistantService:   assistantService,
	}
}

// WeekStart returns the Monday on or before forDate.
func (s *mealPlanService) WeekStart(forDate time.Time) time.Time {
	offset := (int(forDate.Weekday()) + 6) % 7
	return forDate.AddDate(0, 0, -offset)
}

func toEntryResponse(entry *entities.MealPlanEntry) *domain.MealPlanEntryResponse {
	res := &domain.MealPlanEntryResponse{
		ID:       entry.ID,
		Date:     entry.Date,
		MealSlot: entry.MealSlot,
		RecipeID: entry.RecipeID,
		Servings: entry.Servings,
		Notes:    entry.Notes,
	}
	if entry.Recipe != nil {
		res.RecipeName = &entry.Recipe.Name
	}
	return res
}

// GetWeek returns the full 7-day grid starting at the given date. Every date
// and slot key is present; unassigned cells are nil.
func (s *mealPlanService) GetWeek(ctx context.Context, start string) (domain.WeekResponse, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.WeekResponse{}, domain.ErrInvalidDate
	}

	endDate := startDate.AddDate(0, 0, 6)
	entries, err := s.mealPlanRepository.GetInRange(ctx, start, endDate.Format(dateLayout))
	if err != nil {
		return domain.WeekResponse{}, err
	}

	days := make(map[string]map[string]*domain.MealPlanEntryResponse, 7)
	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i).Format(dateLayout)
		days[date] = make(map[string]*domain.MealPlanEntryResponse, len(domain.MealSlots))
		for _, slot := range domain.MealSlots {
			days[date][slot] = nil
		}
	}

	for _, entry := range entries {
		if slots, ok := days[entry.Date]; ok {
			if _, ok := slots[entry.MealSlot]; ok {
				slots[entry.MealSlot] = toEntryResponse(entry)
			}
		}
	}

	return domain.WeekResponse{WeekStart: start, Days: days}, nil
}

// SetMeal inserts, updates, or deletes the entry for a date+slot. An entry
// with neither a recipe nor notes is contentless: setting one clears the
// cell. Note-only entries ("Leftovers", "Eat out") are kept as manual meals.
func (s *mealPlanService) SetMeal(ctx context.Context, req domain.SetMealRequest) error {
	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}

	hasContent := req.RecipeID != nil || (req.Notes != nil && strings.TrimSpace(*req.Notes) != "")

	existing, err := s.mealPlanRepository.GetByDateSlot(ctx, req.Date, req.Slot)
	if err != nil {
		return err
	}

	switch {
	case existing != nil && hasContent:
		existing.RecipeID = req.RecipeID
		existing.Servings = servings
		existing.Notes = req.Notes
		existing.Recipe = nil
		return s.mealPlanRepository.Update(ctx, existing)
	case existing != nil:
		return s.mealPlanRepository.DeleteByDateSlot(ctx, req.Date, req.Slot)
	case hasContent:
		return s.mealPlanRepository.Add(ctx, &entities.MealPlanEntry{
			Date:     req.Date,
			MealSlot: req.Slot,
			RecipeID: req.RecipeID,
			Servings: servings,
			Notes:    req.Notes,
		})
	default:
		return nil
	}
}

func (s *mealPlanService) ClearMeal(ctx context.Context, req domain.ClearMealRequest) error {
	return s.SetMeal(ctx, domain.SetMealRequest{Date: req.Date, Slot: req.Slot})
}

func (s *mealPlanService) GetMealsInRange(ctx context.Context, start, end string) ([]domain.MealPlanEntryResponse, error) {
	entries, err := s.mealPlanRepository.GetInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	response := make([]domain.MealPlanEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, *toEntryResponse(entry))
	}
	return response, nil
}

func (s *mealPlanService) SuggestWeek(ctx context.Context, req domain.SuggestWeekRequest) ([]domain.WeekSuggestion, error) {
	recipes, err := s.recipeRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assistantService.SuggestWeek(ctx, recipes, req.Preferences)
}

// dayOffsets maps suggestion day names onto offsets from the week start.
var dayOffsets = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// ApplyWeek writes accepted suggestions into the plan as note-only manual
// meals, matching suggestion meal names against saved recipes by name so
// exact matches link the recipe instead. Returns how many cells were set.
func (s *mealPlanService) ApplyWeek(ctx context.Context, req domain.ApplyWeekRequest) (int, error) {
	weekStart, err := time.Parse(dateLayout, req.Week)
	if err != nil {
		return 0, domain.ErrInvalidDate
	}

	recipes, err := s.recipeRepository.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	recipeByName := make(map[string]uint, len(recipes))
	for _, r := range recipes {
		recipeByName[strings.ToLower(strings.TrimSpace(r.Name))] = r.ID
	}

	validSlot := func(slot string) bool {
		for _, s := range domain.MealSlots {
			if s == slot {
				return true
			}
		}
		return false
	}

	applied := 0
	for _, suggestion := range req.Suggestions {
		offset, ok := dayOffsets[strings.ToLower(strings.TrimSpace(suggestion.Day))]
		if !ok || !validSlot(suggestion.Slot) || strings.TrimSpace(suggestion.Meal) == "" {
			continue
		}

		date := weekStart.AddDate(0, 0, offset).Format(dateLayout)
		setReq := domain.SetMealRequest{Date: date, Slot: suggestion.Slot, Servings: 1}

		if id, ok := recipeByName[strings.ToLower(strings.TrimSpace(suggestion.Meal))]; ok {
			recipeID := id
			setReq.RecipeID = &recipeID
			if suggestion.Notes != "" {
				notes := suggestion.Notes
				setReq.Notes = &notes
			}
		} else {
			notes := suggestion.Meal
			if suggestion.Notes != "" {
				notes += " (" + suggestion.Notes + ")"
			}
			setReq.Notes = &notes
		}

		if err := s.SetMeal(ctx, setReq); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
