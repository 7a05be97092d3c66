package subscription

import (
	"context"

	"foodplan-backend/entities"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		CreateOrder(ctx context.Context, order *entities.SubscriptionOrder) error
		GetOrderByID(ctx context.Context, id string) (*entities.SubscriptionOrder, error)
		GetOrderByPaymentID(ctx context.Context, paymentID string) (*entities.SubscriptionOrder, error)
		GetOrdersByUser(ctx context.Context, userID string, page, limit int) ([]*entities.SubscriptionOrder, int64, error)

		// ActivateOrder flips the order from pending to paid and applies the
		// profile changes in one transaction. The conditional update makes
		// concurrent confirmations race safely: only the caller that wins the
		// transition applies the effects, everyone else gets claimed=false.
		ActivateOrder(ctx context.Context, orderID string, paymentData datatypes.JSON, profile *entities.UserProfile, allergies []*entities.Allergy) (bool, error)

		// MarkFailed flips a pending order to failed; paid orders are never
		// touched.
		MarkFailed(ctx context.Context, orderID string, paymentData datatypes.JSON) (bool, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CreateOrder(ctx context.Context, order *entities.SubscriptionOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *subscriptionRepository) GetOrderByID(ctx context.Context, id string) (*entities.SubscriptionOrder, error) {
	var order entities.SubscriptionOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *subscriptionRepository) GetOrderByPaymentID(ctx context.Context, paymentID string) (*entities.SubscriptionOrder, error) {
	var order entities.SubscriptionOrder
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *subscriptionRepository) GetOrdersByUser(ctx context.Context, userID string, page, limit int) ([]*entities.SubscriptionOrder, int64, error) {
	var orders []*entities.SubscriptionOrder
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.SubscriptionOrder{}).Where("user_id = ?", userID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *subscriptionRepository) ActivateOrder(ctx context.Context, orderID string, paymentData datatypes.JSON, profile *entities.UserProfile, allergies []*entities.Allergy) (bool, error) {
	var claimed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.SubscriptionOrder{}).
			Where("id = ? AND status = ?", orderID, entities.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":       entities.OrderStatusPaid,
				"payment_data": paymentData,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already transitioned by a concurrent confirmation
			return nil
		}
		claimed = true

		if err := tx.Omit("Allergies").Save(profile).Error; err != nil {
			return err
		}
		return tx.Model(profile).Association("Allergies").Replace(allergies)
	})

	if err != nil {
		return false, err
	}
	return claimed, nil
}

func (r *subscriptionRepository) MarkFailed(ctx context.Context, orderID string, paymentData datatypes.JSON) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.SubscriptionOrder{}).
		Where("id = ? AND status = ?", orderID, entities.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":       entities.OrderStatusFailed,
			"payment_data": paymentData,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
