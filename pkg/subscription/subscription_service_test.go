package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders      map[string]*entities.SubscriptionOrder
	activateErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entities.SubscriptionOrder)}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *entities.SubscriptionOrder) error {
	f.orders[order.ID.String()] = order
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*entities.SubscriptionOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetOrderByPaymentID(_ context.Context, paymentID string) (*entities.SubscriptionOrder, error) {
	for _, order := range f.orders {
		if order.PaymentID == paymentID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) GetOrdersByUser(_ context.Context, userID string, _, _ int) ([]*entities.SubscriptionOrder, int64, error) {
	var out []*entities.SubscriptionOrder
	for _, order := range f.orders {
		if order.UserID.String() == userID {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ActivateOrder(_ context.Context, orderID string, paymentData datatypes.JSON, profile *entities.UserProfile, allergies []*entities.Allergy) (bool, error) {
	if f.activateErr != nil {
		return false, f.activateErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Status != entities.OrderStatusPending {
		return false, nil
	}
	order.Status = entities.OrderStatusPaid
	order.PaymentData = paymentData
	profile.Allergies = allergies
	return true, nil
}

func (f *fakeOrderRepo) MarkFailed(_ context.Context, orderID string, paymentData datatypes.JSON) (bool, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Status != entities.OrderStatusPending {
		return false, nil
	}
	order.Status = entities.OrderStatusFailed
	order.PaymentData = paymentData
	return true, nil
}

type fakeProfileRepo struct {
	profile *entities.UserProfile
}

func (f *fakeProfileRepo) CreateProfile(_ context.Context, profile *entities.UserProfile) error {
	f.profile = profile
	return nil
}

func (f *fakeProfileRepo) GetProfileByUserID(_ context.Context, userID string) (*entities.UserProfile, error) {
	if f.profile == nil || f.profile.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) UpdateProfile(_ context.Context, profile *entities.UserProfile) error {
	f.profile = profile
	return nil
}

func (f *fakeProfileRepo) ReplaceAllergies(_ context.Context, profile *entities.UserProfile, allergies []*entities.Allergy) error {
	profile.Allergies = allergies
	return nil
}

type fakeUserRepo struct {
	user *entities.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	if f.user == nil || f.user.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	return f.user != nil && f.user.Email == email, nil
}

type fakeCatalogService struct{}

func (f *fakeCatalogService) GetDishes(_ context.Context, _, _ string, _, _ int) ([]domain.DishResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeCatalogService) GetDishByID(_ context.Context, _ string) (domain.DishResponse, error) {
	return domain.DishResponse{}, nil
}

func (f *fakeCatalogService) GetDietTypes(_ context.Context) ([]domain.DietTypeResponse, error) {
	return nil, nil
}

func (f *fakeCatalogService) GetAllergies(_ context.Context) ([]domain.AllergyResponse, error) {
	return nil, nil
}

func (f *fakeCatalogService) ResolveDietType(_ context.Context, name string) (*entities.DietType, error) {
	return &entities.DietType{ID: uuid.New(), Name: name}, nil
}

func (f *fakeCatalogService) ResolveAllergy(_ context.Context, name string) (*entities.Allergy, error) {
	return &entities.Allergy{ID: uuid.New(), Name: name}, nil
}

type fakeGateway struct {
	findResult domain.PaymentInfo
	findErr    error
	findCalls  int
	created    []domain.CreatePaymentRequest
}

func (f *fakeGateway) Create(_ context.Context, req domain.CreatePaymentRequest) (domain.CreatePaymentResponse, error) {
	f.created = append(f.created, req)
	return domain.CreatePaymentResponse{
		PaymentID:   req.PaymentID,
		RedirectURL: "https://pay.example/" + req.PaymentID,
	}, nil
}

func (f *fakeGateway) Find(_ context.Context, paymentID string) (domain.PaymentInfo, error) {
	f.findCalls++
	if f.findErr != nil {
		return domain.PaymentInfo{}, f.findErr
	}
	info := f.findResult
	info.PaymentID = paymentID
	return info, nil
}

type fixture struct {
	service  SubscriptionService
	orders   *fakeOrderRepo
	profiles *fakeProfileRepo
	users    *fakeUserRepo
	gateway  *fakeGateway
	userID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	users := &fakeUserRepo{user: &entities.User{ID: userID, Name: "Alex", Email: "alex@example.com"}}
	profiles := &fakeProfileRepo{profile: &entities.UserProfile{
		ID:             uuid.New(),
		UserID:         userID,
		CountOfPersons: 1,
		Breakfast:      true,
		Lunch:          true,
		Dinner:         true,
	}}
	orders := newFakeOrderRepo()
	gateway := &fakeGateway{}

	service := NewSubscriptionService(orders, profiles, users, &fakeCatalogService{}, gateway)
	return &fixture{
		service:  service,
		orders:   orders,
		profiles: profiles,
		users:    users,
		gateway:  gateway,
		userID:   userID,
	}
}

func (fx *fixture) pendingOrder(t *testing.T, params domain.SubscriptionParams) *entities.SubscriptionOrder {
	t.Helper()

	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	orderID := uuid.New()
	order := &entities.SubscriptionOrder{
		ID:                 orderID,
		UserID:             fx.userID,
		Amount:             3600,
		Description:        "Foodplan subscription, 3 month(s)",
		Status:             entities.OrderStatusPending,
		PaymentID:          orderID.String(),
		SubscriptionParams: paramsJSON,
	}
	require.NoError(t, fx.orders.CreateOrder(context.Background(), order))
	return order
}

func expectedEndDate(days int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	fx := newFixture(t)

	res, err := fx.service.Checkout(context.Background(), domain.CheckoutRequest{
		Duration:       "3",
		CountOfPersons: 2,
		DietType:       "Keto",
		Breakfast:      true,
		Lunch:          true,
	}, fx.userID.String())
	require.NoError(t, err)

	assert.Equal(t, float64(3*domain.PricePerMonth), res.Amount)
	assert.Equal(t, "https://pay.example/"+res.PaymentID, res.RedirectURL)

	order, err := fx.orders.GetOrderByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, order.Status)
	assert.Equal(t, order.ID.String(), order.PaymentID)

	var params domain.SubscriptionParams
	require.NoError(t, json.Unmarshal(order.SubscriptionParams, &params))
	assert.Equal(t, 90, params.DurationDays)
	assert.Equal(t, "Keto", params.DietType)

	require.Len(t, fx.gateway.created, 1)
	assert.Equal(t, "alex@example.com", fx.gateway.created[0].Email)
}

func TestCheckoutRejectsUnknownDuration(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Checkout(context.Background(), domain.CheckoutRequest{
		Duration:       "7",
		CountOfPersons: 1,
	}, fx.userID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestConfirmActivatesPaidOrder(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{
		Duration:       "3",
		DurationDays:   90,
		CountOfPersons: 2,
		DietType:       "Keto",
		Allergies:      []string{"nuts"},
		Breakfast:      true,
		Dessert:        true,
	})
	fx.gateway.findResult = domain.PaymentInfo{
		Status: domain.PaymentStatusSucceeded,
		Paid:   true,
		Raw:    []byte(`{"transaction_status":"settlement"}`),
	}

	res, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, res.Status)

	stored, err := fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, stored.Status)
	assert.NotEmpty(t, stored.PaymentData)

	profile := fx.profiles.profile
	assert.True(t, profile.Breakfast)
	assert.False(t, profile.Lunch)
	assert.False(t, profile.Dinner)
	assert.True(t, profile.Dessert)
	assert.Equal(t, 2, profile.CountOfPersons)
	require.NotNil(t, profile.DietTypeID)
	require.Len(t, profile.Allergies, 1)
	assert.Equal(t, "nuts", profile.Allergies[0].Name)
	require.NotNil(t, profile.SubscriptionEndDate)
	assert.True(t, profile.SubscriptionEndDate.Equal(expectedEndDate(90)))
	require.NotNil(t, profile.ActiveSubscription)
	assert.Equal(t, order.ID, *profile.ActiveSubscription)
}

func TestConfirmIsIdempotentForPaidOrder(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{
		Duration:     "1",
		DurationDays: 30,
		Breakfast:    true,
	})
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusSucceeded, Paid: true}

	_, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	require.NoError(t, err)

	firstEndDate := *fx.profiles.profile.SubscriptionEndDate
	findCallsAfterFirst := fx.gateway.findCalls

	res, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, res.Status)

	// the second confirmation must not touch the gateway or re-extend
	assert.Equal(t, findCallsAfterFirst, fx.gateway.findCalls)
	assert.True(t, fx.profiles.profile.SubscriptionEndDate.Equal(firstEndDate))
}

func TestConfirmLeavesOrderPendingWhileWaitingForCapture(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{Duration: "1", DurationDays: 30})
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusWaitingForCapture}

	res, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, res.Status)

	stored, err := fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, stored.Status)
	assert.Nil(t, fx.profiles.profile.SubscriptionEndDate)
}

func TestConfirmMarksOrderFailedOnCanceledPayment(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{Duration: "1", DurationDays: 30})
	fx.gateway.findResult = domain.PaymentInfo{
		Status: domain.PaymentStatusCanceled,
		Raw:    []byte(`{"transaction_status":"expire"}`),
	}

	_, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	assert.ErrorIs(t, err, domain.ErrOrderFailed)

	stored, err := fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusFailed, stored.Status)
	assert.Nil(t, fx.profiles.profile.SubscriptionEndDate)
}

func TestConfirmRejectsForeignOrder(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{Duration: "1", DurationDays: 30})

	_, err := fx.service.Confirm(context.Background(), order.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestActivationFailureKeepsOrderPending(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{Duration: "1", DurationDays: 30})
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusSucceeded, Paid: true}
	fx.orders.activateErr = errors.New("connection reset")

	_, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	assert.ErrorIs(t, err, domain.ErrActivationFailed)

	stored, getErr := fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, getErr)
	assert.Equal(t, entities.OrderStatusPending, stored.Status)

	// retriable: once the store recovers the same confirmation goes through
	fx.orders.activateErr = nil
	res, err := fx.service.Confirm(context.Background(), order.ID.String(), fx.userID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, res.Status)
}

func TestWebhookRederivesStatusFromGateway(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{
		Duration:     "3",
		DurationDays: 90,
		Breakfast:    true,
	})

	// a forged callback claiming success must not matter: the gateway
	// still reports the payment as waiting
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusWaitingForCapture}
	require.NoError(t, fx.service.HandlePaymentNotification(context.Background(), order.PaymentID))

	stored, err := fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPending, stored.Status)

	// once the gateway settles, the same notification activates the order
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusSucceeded, Paid: true}
	require.NoError(t, fx.service.HandlePaymentNotification(context.Background(), order.PaymentID))

	stored, err = fx.orders.GetOrderByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, stored.Status)
	require.NotNil(t, fx.profiles.profile.SubscriptionEndDate)
	assert.True(t, fx.profiles.profile.SubscriptionEndDate.Equal(expectedEndDate(90)))
}

func TestWebhookIgnoresAlreadyPaidOrder(t *testing.T) {
	fx := newFixture(t)
	order := fx.pendingOrder(t, domain.SubscriptionParams{Duration: "1", DurationDays: 30})
	fx.gateway.findResult = domain.PaymentInfo{Status: domain.PaymentStatusSucceeded, Paid: true}

	require.NoError(t, fx.service.HandlePaymentNotification(context.Background(), order.PaymentID))
	callsAfterFirst := fx.gateway.findCalls

	// redelivery of the same confirmation is a no-op
	require.NoError(t, fx.service.HandlePaymentNotification(context.Background(), order.PaymentID))
	assert.Equal(t, callsAfterFirst, fx.gateway.findCalls)
}

func TestWebhookUnknownPayment(t *testing.T) {
	fx := newFixture(t)
	err := fx.service.HandlePaymentNotification(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
