package handlers

import (
	"meal-planner/domain"
	"meal-planner/internal/api/presenters"
	"meal-planner/pkg/knownprice"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	KnownPriceHandler interface {
		GetPrices(c *fiber.Ctx) error
		UpsertPrice(c *fiber.Ctx) error
		DeletePrice(c *fiber.Ctx) error
		ParseReceipt(c *fiber.Ctx) error
	}

	knownPriceHandler struct {
		knownPriceService knownprice.KnownPriceService
		validator         *validator.Validate
	}
)

func NewKnownPriceHandler(knownPriceService knownprice.KnownPriceService, validator *validator.Validate) KnownPriceHandler {
	return &knownPriceHandler{
		knownPriceService: knownPriceService,
		validator:         validator,
	}
}

func (h *knownPriceHandler) GetPrices(c *fiber.Ctx) error {
	prices, err := h.knownPriceService.GetPrices(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPrices, err)
	}
	return presenters.SuccessResponse(c, prices, fiber.StatusOK, domain.MessageSuccessGetPrices)
}

func (h *knownPriceHandler) UpsertPrice(c *fiber.Ctx) error {
	req := new(domain.KnownPriceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertPrice, err)
	}

	if err := h.knownPriceService.UpsertPrice(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertPrice, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpsertPrice)
}

func (h *knownPriceHandler) DeletePrice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePrice, err)
	}

	if err := h.knownPriceService.DeletePrice(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePrice, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePrice)
}

func (h *knownPriceHandler) ParseReceipt(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadReceiptRequest{Images: form.File["images"]}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedParseReceipt, err)
	}

	res, err := h.knownPriceService.ParseReceipt(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedParseReceipt, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessParseReceipt)
}
