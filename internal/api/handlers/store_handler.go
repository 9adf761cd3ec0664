package handlers

import (
	"meal-planner/domain"
	"meal-planner/internal/api/presenters"
	"meal-planner/pkg/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StoreHandler interface {
		GetStores(c *fiber.Ctx) error
		AddStore(c *fiber.Ctx) error
		UpdateStore(c *fiber.Ctx) error
		DeleteStore(c *fiber.Ctx) error
	}

	storeHandler struct {
		storeService store.StoreService
		validator    *validator.Validate
	}
)

func NewStoreHandler(storeService store.StoreService, validator *validator.Validate) StoreHandler {
	return &storeHandler{
		storeService: storeService,
		validator:    validator,
	}
}

func (h *storeHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.storeService.GetStores(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStores, err)
	}
	return presenters.SuccessResponse(c, stores, fiber.StatusOK, domain.MessageSuccessGetStores)
}

func (h *storeHandler) AddStore(c *fiber.Ctx) error {
	req := new(domain.StoreRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStore, err)
	}

	res, err := h.storeService.AddStore(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddStore, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddStore)
}

func (h *storeHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStore, err)
	}

	req := new(domain.StoreRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStore, err)
	}

	if err := h.storeService.UpdateStore(c.Context(), id, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStore, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStore)
}

func (h *storeHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStore, err)
	}

	if err := h.storeService.DeleteStore(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStore, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteStore)
}
