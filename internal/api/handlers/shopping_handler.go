package handlers

import (
	"meal-planner/domain"
	"meal-planner/internal/api/presenters"
	"meal-planner/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		Generate(c *fiber.Ctx) error
		Sources(c *fiber.Ctx) error
		SaveCached(c *fiber.Ctx) error
		LoadCached(c *fiber.Ctx) error
		ClearCached(c *fiber.Ctx) error
		EmailList(c *fiber.Ctx) error
		EstimatePrices(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingHandler) parseGenerateRequest(c *fiber.Ctx) (*domain.GenerateListRequest, error) {
	req := new(domain.GenerateListRequest)
	if err := c.BodyParser(req); err != nil {
		return nil, err
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (h *shoppingHandler) Generate(c *fiber.Ctx) error {
	req, err := h.parseGenerateRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.shoppingService.Generate(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGenerateList)
}

func (h *shoppingHandler) Sources(c *fiber.Ctx) error {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateList, domain.ErrInvalidDate)
	}

	sources, err := h.shoppingService.Sources(c.Context(), start, end)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateList, err)
	}
	return presenters.SuccessResponse(c, sources, fiber.StatusOK, domain.MessageSuccessGenerateList)
}

func (h *shoppingHandler) SaveCached(c *fiber.Ctx) error {
	req, err := h.parseGenerateRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.shoppingService.SaveCached(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveList)
}

func (h *shoppingHandler) LoadCached(c *fiber.Ctx) error {
	res, err := h.shoppingService.LoadCached(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedLoadList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLoadList)
}

func (h *shoppingHandler) ClearCached(c *fiber.Ctx) error {
	if err := h.shoppingService.ClearCached(c.Context()); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClearList, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearList)
}

func (h *shoppingHandler) EmailList(c *fiber.Ctx) error {
	req := new(domain.EmailListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailList, err)
	}

	if err := h.shoppingService.EmailList(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailList, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailList)
}

func (h *shoppingHandler) EstimatePrices(c *fiber.Ctx) error {
	req, err := h.parseGenerateRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	estimates, err := h.shoppingService.EstimatePrices(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEstimatePrices, err)
	}
	return presenters.SuccessResponse(c, estimates, fiber.StatusOK, domain.MessageSuccessEstimatePrices)
}
