package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"
	"foodplan-backend/internal/utils/mailing"
	"foodplan-backend/pkg/catalog"
	"foodplan-backend/pkg/payment"
	"foodplan-backend/pkg/profile"
	"foodplan-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error)
		Confirm(ctx context.Context, orderID string, userID string) (domain.ConfirmResponse, error)
		GetOrder(ctx context.Context, orderID string, userID string) (domain.OrderResponse, error)
		GetOrders(ctx context.Context, userID string, page, limit int) ([]domain.OrderResponse, int64, error)
		HandlePaymentNotification(ctx context.Context, paymentID string) error
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		profileRepository      profile.ProfileRepository
		userRepository         user.UserRepository
		catalogService         catalog.CatalogService
		gateway                payment.PaymentGateway
	}
)

func NewSubscriptionService(
	subscriptionRepository SubscriptionRepository,
	profileRepository profile.ProfileRepository,
	userRepository user.UserRepository,
	catalogService catalog.CatalogService,
	gateway payment.PaymentGateway,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		profileRepository:      profileRepository,
		userRepository:         userRepository,
		catalogService:         catalogService,
		gateway:                gateway,
	}
}

func (s *subscriptionService) Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error) {
	days, ok := domain.DurationDays[req.Duration]
	if !ok {
		return domain.CheckoutResponse{}, domain.ErrInvalidDuration
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CheckoutResponse{}, domain.ErrParseUUID
	}

	buyer, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CheckoutResponse{}, domain.ErrUserNotFound
		}
		return domain.CheckoutResponse{}, err
	}

	params := domain.SubscriptionParams{
		Duration:       req.Duration,
		DurationDays:   days,
		CountOfPersons: req.CountOfPersons,
		DietType:       req.DietType,
		Allergies:      req.Allergies,
		Breakfast:      req.Breakfast,
		Lunch:          req.Lunch,
		Dinner:         req.Dinner,
		Dessert:        req.Dessert,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	amount := float64(domain.DurationMonths[req.Duration] * domain.PricePerMonth)
	orderID := uuid.New()
	description := fmt.Sprintf("Foodplan subscription, %s month(s)", req.Duration)

	order := &entities.SubscriptionOrder{
		ID:                 orderID,
		UserID:             userUUID,
		Amount:             amount,
		Description:        description,
		Status:             entities.OrderStatusPending,
		PaymentID:          orderID.String(),
		SubscriptionParams: paramsJSON,
	}

	if err := s.subscriptionRepository.CreateOrder(ctx, order); err != nil {
		return domain.CheckoutResponse{}, err
	}

	paymentResp, err := s.gateway.Create(ctx, domain.CreatePaymentRequest{
		PaymentID:   order.PaymentID,
		Amount:      amount,
		Description: description,
		Email:       buyer.Email,
	})
	if err != nil {
		// the order stays pending; the user can retry checkout
		return domain.CheckoutResponse{}, err
	}

	return domain.CheckoutResponse{
		OrderID:     orderID.String(),
		Amount:      amount,
		PaymentID:   paymentResp.PaymentID,
		RedirectURL: paymentResp.RedirectURL,
	}, nil
}

func (s *subscriptionService) Confirm(ctx context.Context, orderID string, userID string) (domain.ConfirmResponse, error) {
	order, err := s.subscriptionRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConfirmResponse{}, domain.ErrOrderNotFound
		}
		return domain.ConfirmResponse{}, err
	}

	if order.UserID.String() != userID {
		return domain.ConfirmResponse{}, domain.ErrUserNotAllowed
	}

	switch order.Status {
	case entities.OrderStatusPaid:
		// confirming an already-paid order is a no-op success
		return s.confirmResponse(ctx, order)
	case entities.OrderStatusFailed:
		return domain.ConfirmResponse{}, domain.ErrOrderFailed
	}

	info, err := s.gateway.Find(ctx, order.PaymentID)
	if err != nil {
		return domain.ConfirmResponse{}, err
	}

	switch info.Status {
	case domain.PaymentStatusSucceeded:
		if err := s.activate(ctx, order, info); err != nil {
			return domain.ConfirmResponse{}, err
		}
		order.Status = entities.OrderStatusPaid
		return s.confirmResponse(ctx, order)
	case domain.PaymentStatusCanceled:
		if _, err := s.subscriptionRepository.MarkFailed(ctx, order.ID.String(), info.Raw); err != nil {
			return domain.ConfirmResponse{}, err
		}
		return domain.ConfirmResponse{}, domain.ErrOrderFailed
	default:
		// waiting_for_capture or unknown: nothing changes, the user is
		// told to retry later
		return domain.ConfirmResponse{
			OrderID: order.ID.String(),
			Status:  entities.OrderStatusPending,
		}, nil
	}
}

func (s *subscriptionService) confirmResponse(ctx context.Context, order *entities.SubscriptionOrder) (domain.ConfirmResponse, error) {
	res := domain.ConfirmResponse{
		OrderID: order.ID.String(),
		Status:  order.Status,
	}

	userProfile, err := s.profileRepository.GetProfileByUserID(ctx, order.UserID.String())
	if err == nil && userProfile.SubscriptionEndDate != nil {
		res.SubscriptionEndDate = userProfile.SubscriptionEndDate.Format("2006-01-02")
	}
	return res, nil
}

// activate applies a paid order's parameters to the owner's profile and
// extends the subscription. It is safe to call more than once for the same
// order: the repository only lets the first caller through, later calls
// (or a concurrent one) see the pending->paid transition already done and
// report success without touching the profile again.
func (s *subscriptionService) activate(ctx context.Context, order *entities.SubscriptionOrder, info domain.PaymentInfo) error {
	var params domain.SubscriptionParams
	if err := json.Unmarshal(order.SubscriptionParams, &params); err != nil {
		return domain.ErrActivationFailed
	}

	days := params.DurationDays
	if days == 0 {
		if d, ok := domain.DurationDays[params.Duration]; ok {
			days = d
		} else {
			return domain.ErrInvalidDuration
		}
	}

	userProfile, err := s.profileRepository.GetProfileByUserID(ctx, order.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProfileNotFound
		}
		return err
	}

	userProfile.Breakfast = params.Breakfast
	userProfile.Lunch = params.Lunch
	userProfile.Dinner = params.Dinner
	userProfile.Dessert = params.Dessert
	if params.CountOfPersons > 0 {
		userProfile.CountOfPersons = params.CountOfPersons
	}

	if params.DietType != "" {
		dietType, err := s.catalogService.ResolveDietType(ctx, params.DietType)
		if err != nil {
			return err
		}
		userProfile.DietTypeID = &dietType.ID
	}

	allergies := make([]*entities.Allergy, 0, len(params.Allergies))
	for _, name := range params.Allergies {
		allergy, err := s.catalogService.ResolveAllergy(ctx, name)
		if err != nil {
			return err
		}
		allergies = append(allergies, allergy)
	}

	now := time.Now()
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	userProfile.SubscriptionEndDate = &endDate
	orderRef := order.ID
	userProfile.ActiveSubscription = &orderRef

	claimed, err := s.subscriptionRepository.ActivateOrder(ctx, order.ID.String(), info.Raw, userProfile, allergies)
	if err != nil {
		// the transaction rolled back, the order is still pending and the
		// confirmation can be redelivered
		log.Printf("activation failed for order %s: %v", order.ID, err)
		return domain.ErrActivationFailed
	}

	if claimed {
		s.sendActivationMail(ctx, order, endDate)
	}
	return nil
}

func (s *subscriptionService) sendActivationMail(ctx context.Context, order *entities.SubscriptionOrder, endDate time.Time) {
	buyer, err := s.userRepository.GetUserByID(ctx, order.UserID.String())
	if err != nil {
		return
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your subscription is active until <b>%s</b>. Enjoy your meals!</p>",
		buyer.Name, endDate.Format("2006-01-02"),
	)
	if err := mailing.SendMail(buyer.Email, "Subscription activated", body); err != nil {
		log.Printf("failed to send activation mail for order %s: %v", order.ID, err)
	}
}

func (s *subscriptionService) GetOrder(ctx context.Context, orderID string, userID string) (domain.OrderResponse, error) {
	order, err := s.subscriptionRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}

	if order.UserID.String() != userID {
		return domain.OrderResponse{}, domain.ErrUserNotAllowed
	}

	return toOrderResponse(order), nil
}

func (s *subscriptionService) GetOrders(ctx context.Context, userID string, page, limit int) ([]domain.OrderResponse, int64, error) {
	orders, count, err := s.subscriptionRepository.GetOrdersByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	return response, count, nil
}

func toOrderResponse(order *entities.SubscriptionOrder) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:          order.ID.String(),
		Amount:      order.Amount,
		Description: order.Description,
		Status:      order.Status,
		PaymentID:   order.PaymentID,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	}
	_ = json.Unmarshal(order.SubscriptionParams, &res.Params)
	return res
}

// HandlePaymentNotification processes a gateway callback. The payload only
// identifies the payment; the status is always re-derived from the gateway
// so a forged callback cannot flip an order to paid.
func (s *subscriptionService) HandlePaymentNotification(ctx context.Context, paymentID string) error {
	order, err := s.subscriptionRepository.GetOrderByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	if order.Status != entities.OrderStatusPending {
		return nil
	}

	info, err := s.gateway.Find(ctx, order.PaymentID)
	if err != nil {
		return err
	}

	switch info.Status {
	case domain.PaymentStatusSucceeded:
		return s.activate(ctx, order, info)
	case domain.PaymentStatusCanceled:
		_, err := s.subscriptionRepository.MarkFailed(ctx, order.ID.String(), info.Raw)
		return err
	default:
		// still waiting, keep the order pending
		return nil
	}
}
