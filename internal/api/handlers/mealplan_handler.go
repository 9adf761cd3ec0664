package handlers

import (
	"time"

	"meal-planner/domain"
	"meal-planner/internal/api/presenters"
	"meal-planner/pkg/mealplan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPlanHandler interface {
		GetWeek(c *fiber.Ctx) error
		SetMeal(c *fiber.Ctx) error
		ClearMeal(c *fiber.Ctx) error
		SuggestWeek(c *fiber.Ctx) error
		ApplyWeek(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		mealPlanService mealplan.MealPlanService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(mealPlanService mealplan.MealPlanService, validator *validator.Validate) MealPlanHandler {
	return &mealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

// GetWeek returns the grid for the week containing ?date (default today),
// snapped back to Monday.
func (h *mealPlanHandler) GetWeek(c *fiber.Ctx) error {
	forDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeek, domain.ErrInvalidDate)
		}
		forDate = parsed
	}

	start := h.mealPlanService.WeekStart(forDate).Format("2006-01-02")
	week, err := h.mealPlanService.GetWeek(c.Context(), start)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeek, err)
	}
	return presenters.SuccessResponse(c, week, fiber.StatusOK, domain.MessageSuccessGetWeek)
}

func (h *mealPlanHandler) SetMeal(c *fiber.Ctx) error {
	req := new(domain.SetMealRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetMeal, err)
	}

	if err := h.mealPlanService.SetMeal(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetMeal, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetMeal)
}

func (h *mealPlanHandler) ClearMeal(c *fiber.Ctx) error {
	req := new(domain.ClearMealRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClearMeal, err)
	}

	if err := h.mealPlanService.ClearMeal(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClearMeal, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearMeal)
}

func (h *mealPlanHandler) SuggestWeek(c *fiber.Ctx) error {
	req := new(domain.SuggestWeekRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestWeek, err)
	}

	suggestions, err := h.mealPlanService.SuggestWeek(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestWeek, err)
	}
	return presenters.SuccessResponse(c, suggestions, fiber.StatusOK, domain.MessageSuccessSuggestWeek)
}

func (h *mealPlanHandler) ApplyWeek(c *fiber.Ctx) error {
	req := new(domain.ApplyWeekRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApplyWeek, err)
	}

	applied, err := h.mealPlanService.ApplyWeek(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApplyWeek, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"applied": applied}, fiber.StatusOK, domain.MessageSuccessApplyWeek)
}
