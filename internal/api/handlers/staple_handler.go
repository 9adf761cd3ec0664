package handlers

import (
	"meal-planner/domain"
	"meal-planner/internal/api/presenters"
	"meal-planner/pkg/staple"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StapleHandler interface {
		GetStaples(c *fiber.Ctx) error
		AddStaple(c *fiber.Ctx) error
		UpdateStaple(c *fiber.Ctx) error
		DeleteStaple(c *fiber.Ctx) error
		SetNeedToBuy(c *fiber.Ctx) error
	}

	stapleHandler struct {
		stapleService staple.StapleService
		validator     *validator.Validate
	}
)

func NewStapleHandler(stapleService staple.StapleService, validator *validator.Validate) StapleHandler {
	return &stapleHandler{
		stapleService: stapleService,
		validator:     validator,
	}
}

func (h *stapleHandler) GetStaples(c *fiber.Ctx) error {
	staples, err := h.stapleService.GetStaples(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStaples, err)
	}
	return presenters.SuccessResponse(c, staples, fiber.StatusOK, domain.MessageSuccessGetStaples)
}

func (h *stapleHandler) AddStaple(c *fiber.Ctx) error {
	req := new(domain.StapleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStaple, err)
	}

	res, err := h.stapleService.AddStaple(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStaple, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddStaple)
}

func (h *stapleHandler) UpdateStaple(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStaple, err)
	}

	req := new(domain.StapleRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStaple, err)
	}

	if err := h.stapleService.UpdateStaple(c.Context(), id, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStaple, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStaple)
}

func (h *stapleHandler) DeleteStaple(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStaple, err)
	}

	if err := h.stapleService.DeleteStaple(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStaple, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteStaple)
}

func (h *stapleHandler) SetNeedToBuy(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleStaple, err)
	}

	req := new(domain.SetNeedToBuyRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.stapleService.SetNeedToBuy(c.Context(), id, req.NeedToBuy); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleStaple, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessToggleStaple)
}
