package domain

import (
	"errors"
)

var (
	MessageSuccessCheckout      = "subscription order created, redirect to payment"
	MessageSuccessConfirm       = "subscription activated successfully"
	MessageSuccessGetOrder      = "order retrieved successfully"
	MessagePaymentStillPending  = "payment is not confirmed yet, please retry later"
	MessageFailedCheckout       = "failed to create subscription order"
	MessageFailedConfirm        = "failed to confirm subscription"
	MessageFailedGetOrder       = "failed to retrieve order"

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderFailed        = errors.New("order payment failed")
	ErrPaymentNotComplete = errors.New("payment not completed")
	ErrInvalidDuration    = errors.New("invalid subscription duration")
	ErrActivationFailed   = errors.New("failed to activate subscription")
)

// PricePerMonth is the flat subscription rate used to derive the order amount.
const PricePerMonth = 1200

// DurationDays maps the subscription duration code (months) to the number of
// days the subscription is extended by on activation.
var DurationDays = map[string]int{
	"1":  30,
	"3":  90,
	"6":  180,
	"12": 365,
}

// DurationMonths mirrors DurationDays for amount calculation.
var DurationMonths = map[string]int{
	"1":  1,
	"3":  3,
	"6":  6,
	"12": 12,
}

type (
	// SubscriptionParams is the snapshot of the user's selections taken at
	// purchase time and replayed onto the profile when the order is paid.
	SubscriptionParams struct {
		Duration       string   `json:"duration"`
		DurationDays   int      `json:"duration_days"`
		CountOfPersons int      `json:"count_of_persons"`
		DietType       string   `json:"diet_type,omitempty"`
		Allergies      []string `json:"allergies,omitempty"`
		Breakfast      bool     `json:"breakfast"`
		Lunch          bool     `json:"lunch"`
		Dinner         bool     `json:"dinner"`
		Dessert        bool     `json:"dessert"`
	}

	CheckoutRequest struct {
		Duration       string   `json:"duration" validate:"required,oneof=1 3 6 12"`
		CountOfPersons int      `json:"count_of_persons" validate:"required,min=1"`
		DietType       string   `json:"diet_type" validate:"omitempty"`
		Allergies      []string `json:"allergies" validate:"omitempty,max=6"`
		Breakfast      bool     `json:"breakfast"`
		Lunch          bool     `json:"lunch"`
		Dinner         bool     `json:"dinner"`
		Dessert        bool     `json:"dessert"`
	}

	CheckoutResponse struct {
		OrderID     string  `json:"order_id"`
		Amount      float64 `json:"amount"`
		PaymentID   string  `json:"payment_id"`
		RedirectURL string  `json:"redirect_url"`
	}

	ConfirmResponse struct {
		OrderID             string `json:"order_id"`
		Status              string `json:"status"`
		SubscriptionEndDate string `json:"subscription_end_date,omitempty"`
	}

	OrderResponse struct {
		ID          string             `json:"id"`
		Amount      float64            `json:"amount"`
		Description string             `json:"description"`
		Status      string             `json:"status"`
		PaymentID   string             `json:"payment_id,omitempty"`
		Params      SubscriptionParams `json:"params"`
		CreatedAt   string             `json:"created_at"`
	}
)
