package domain

import (
	"errors"
	"time"
)

const (
	PaymentStatusSucceeded         = "succeeded"
	PaymentStatusWaitingForCapture = "waiting_for_capture"
	PaymentStatusCanceled          = "canceled"
	PaymentStatusUnknown           = "unknown"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentNotFound    = errors.New("payment not found")
)

type (
	CreatePaymentRequest struct {
		PaymentID   string
		Amount      float64
		Description string
		Email       string
	}

	CreatePaymentResponse struct {
		PaymentID   string
		RedirectURL string
	}

	// PaymentInfo is the gateway's view of a payment, re-derived on every
	// confirmation. Webhook payloads are never trusted for status.
	PaymentInfo struct {
		PaymentID string
		Status    string
		Paid      bool
		Amount    float64
		Currency  string
		CreatedAt time.Time
		Raw       []byte
	}
)
