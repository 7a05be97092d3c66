package handlers

import (
	"strconv"

	"foodplan-backend/domain"
	"foodplan-backend/internal/api/presenters"
	"foodplan-backend/pkg/catalog"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetDishes(c *fiber.Ctx) error
		GetDishDetails(c *fiber.Ctx) error
		GetDietTypes(c *fiber.Ctx) error
		GetAllergies(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

func (h *catalogHandler) GetDishes(c *fiber.Ctx) error {
	category := c.Query("category", "all")
	dietType := c.Query("diet_type", "")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	dishes, count, err := h.catalogService.GetDishes(c.Context(), category, dietType, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDishes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"dishes": dishes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDishes)
}

func (h *catalogHandler) GetDishDetails(c *fiber.Ctx) error {
	dishID := c.Params("id")

	dish, err := h.catalogService.GetDishByID(c.Context(), dishID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDish, err)
	}

	return presenters.SuccessResponse(c, dish, fiber.StatusOK, domain.MessageSuccessGetDish)
}

func (h *catalogHandler) GetDietTypes(c *fiber.Ctx) error {
	dietTypes, err := h.catalogService.GetDietTypes(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDietTypes, err)
	}

	return presenters.SuccessResponse(c, dietTypes, fiber.StatusOK, domain.MessageSuccessGetDietTypes)
}

func (h *catalogHandler) GetAllergies(c *fiber.Ctx) error {
	allergies, err := h.catalogService.GetAllergies(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAllergies, err)
	}

	return presenters.SuccessResponse(c, allergies, fiber.StatusOK, domain.MessageSuccessGetAllergies)
}
