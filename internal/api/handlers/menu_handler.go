package handlers

import (
	"errors"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/internal/api/presenters"
	"foodplan-backend/pkg/menu"

	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetDailyMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
	}
)

func NewMenuHandler(menuService menu.MenuService) MenuHandler {
	return &menuHandler{menuService: menuService}
}

func (h *menuHandler) GetDailyMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDailyMenu, err)
		}
		date = parsed
	}

	res, err := h.menuService.GetDailyMenu(c.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionExpired) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetDailyMenu, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyMenu)
}
