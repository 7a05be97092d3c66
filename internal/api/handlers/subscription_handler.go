package handlers

import (
	"log"
	"strconv"

	"foodplan-backend/domain"
	"foodplan-backend/entities"
	"foodplan-backend/internal/api/presenters"
	"foodplan-backend/pkg/subscription"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Checkout(c *fiber.Ctx) error
		Confirm(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		PaymentWebhook(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
		validator           *validator.Validate
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService, validator *validator.Validate) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
		validator:           validator,
	}
}

func (h *subscriptionHandler) Checkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CheckoutRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	res, err := h.subscriptionService.Checkout(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCheckout)
}

func (h *subscriptionHandler) Confirm(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	orderID := c.Params("id")

	res, err := h.subscriptionService.Confirm(c.Context(), orderID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirm, err)
	}

	if res.Status == entities.OrderStatusPending {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessagePaymentStillPending)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConfirm)
}

func (h *subscriptionHandler) GetOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	orderID := c.Params("id")

	res, err := h.subscriptionService.GetOrder(c.Context(), orderID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *subscriptionHandler) GetOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.subscriptionService.GetOrders(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

// PaymentWebhook handles gateway callbacks. Only the payment reference is
// taken from the payload; the actual status is re-derived from the gateway.
// Failures are logged but the endpoint still acks, otherwise the gateway
// keeps redelivering the same notification.
func (h *subscriptionHandler) PaymentWebhook(c *fiber.Ctx) error {
	var payload struct {
		OrderID string `json:"order_id"`
	}

	if err := c.BodyParser(&payload); err != nil || payload.OrderID == "" {
		log.Printf("payment webhook: malformed payload: %v", err)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := h.subscriptionService.HandlePaymentNotification(c.Context(), payload.OrderID); err != nil {
		log.Printf("payment webhook: notification for %s not applied: %v", payload.OrderID, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
