package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID  `gorm:"uniqueIndex" json:"user_id"`
	DietTypeID          *uuid.UUID `json:"diet_type_id,omitempty"`
	BudgetLimit         *float64   `json:"budget_limit,omitempty"`
	CountOfPersons      int        `gorm:"default:1" json:"count_of_persons"`
	Breakfast           bool       `gorm:"default:true" json:"breakfast"`
	Lunch               bool       `gorm:"default:true" json:"lunch"`
	Dinner              bool       `gorm:"default:true" json:"dinner"`
	Dessert             bool       `gorm:"default:false" json:"dessert"`
	SubscriptionEndDate *time.Time `gorm:"type:date" json:"subscription_end_date,omitempty"`
	AvatarURL           string     `json:"avatar_url,omitempty"`
	ActiveSubscription  *uuid.UUID `json:"active_subscription,omitempty"`

	User      *User      `gorm:"foreignKey:UserID"`
	DietType  *DietType  `gorm:"foreignKey:DietTypeID"`
	Allergies []*Allergy `gorm:"many2many:profile_allergies" json:"allergies,omitempty"`
	Timestamp
}

// HasSubscription reports whether the profile's subscription covers the given date.
func (p *UserProfile) HasSubscription(at time.Time) bool {
	if p.SubscriptionEndDate == nil {
		return false
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return !p.SubscriptionEndDate.Before(day)
}
