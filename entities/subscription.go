package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

type SubscriptionOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	// pending -> paid or pending -> failed, never reverses
	Status             string         `gorm:"default:'pending'" json:"status"`
	PaymentID          string         `gorm:"index" json:"payment_id,omitempty"`
	SubscriptionParams datatypes.JSON `gorm:"type:jsonb" json:"subscription_params"`
	PaymentData        datatypes.JSON `gorm:"type:jsonb" json:"payment_data,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
