package payment

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/internal/utils"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	// PaymentGateway is the thin call-through to the payment provider.
	// Create opens a payment and returns where to send the user; Find
	// re-derives the payment's current state from the provider, which is
	// the only trusted source of payment status.
	PaymentGateway interface {
		Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.CreatePaymentResponse, error)
		Find(ctx context.Context, paymentID string) (domain.PaymentInfo, error)
	}

	paymentGateway struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewPaymentGateway(cfg utils.PaymentConfig) PaymentGateway {
	env := midtrans.Sandbox
	if cfg.IsProd {
		env = midtrans.Production
	}

	g := &paymentGateway{}
	g.snapClient.New(cfg.ServerKey, env)
	g.coreClient.New(cfg.ServerKey, env)
	return g
}

func (g *paymentGateway) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.CreatePaymentResponse, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.PaymentID,
			GrossAmt: int64(req.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.PaymentID,
				Name:  req.Description,
				Price: int64(req.Amount),
				Qty:   1,
			},
		},
	}

	resp, err := g.snapClient.CreateTransaction(snapReq)
	if err != nil {
		return domain.CreatePaymentResponse{}, domain.ErrGatewayUnavailable
	}

	return domain.CreatePaymentResponse{
		PaymentID:   req.PaymentID,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (g *paymentGateway) Find(ctx context.Context, paymentID string) (domain.PaymentInfo, error) {
	status, err := g.coreClient.CheckTransaction(paymentID)
	if err != nil {
		return domain.PaymentInfo{}, domain.ErrGatewayUnavailable
	}
	if status == nil || status.OrderID == "" {
		return domain.PaymentInfo{}, domain.ErrPaymentNotFound
	}

	info := domain.PaymentInfo{
		PaymentID: status.OrderID,
		Status:    mapStatus(status.TransactionStatus, status.FraudStatus),
		Currency:  status.Currency,
	}
	info.Paid = info.Status == domain.PaymentStatusSucceeded

	if amount, parseErr := strconv.ParseFloat(status.GrossAmount, 64); parseErr == nil {
		info.Amount = amount
	}
	if createdAt, parseErr := time.Parse("2006-01-02 15:04:05", status.TransactionTime); parseErr == nil {
		info.CreatedAt = createdAt
	}
	if raw, marshalErr := json.Marshal(status); marshalErr == nil {
		info.Raw = raw
	}

	return info, nil
}

func mapStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "settlement":
		return domain.PaymentStatusSucceeded
	case "capture":
		if fraudStatus == "accept" {
			return domain.PaymentStatusSucceeded
		}
		return domain.PaymentStatusWaitingForCapture
	case "pending":
		return domain.PaymentStatusWaitingForCapture
	case "deny", "cancel", "expire", "failure":
		return domain.PaymentStatusCanceled
	default:
		return domain.PaymentStatusUnknown
	}
}
