package profile

import (
	"context"

	"foodplan-backend/entities"

	"gorm.io/gorm"
)

type (
	ProfileRepository interface {
		CreateProfile(ctx context.Context, profile *entities.UserProfile) error
		GetProfileByUserID(ctx context.Context, userID string) (*entities.UserProfile, error)
		UpdateProfile(ctx context.Context, profile *entities.UserProfile) error
		ReplaceAllergies(ctx context.Context, profile *entities.UserProfile, allergies []*entities.Allergy) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *entities.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	if err := r.db.WithContext(ctx).
		Preload("DietType").
		Preload("Allergies").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, profile *entities.UserProfile) error {
	return r.db.WithContext(ctx).Omit("Allergies").Save(profile).Error
}

func (r *profileRepository) ReplaceAllergies(ctx context.Context, profile *entities.UserProfile, allergies []*entities.Allergy) error {
	return r.db.WithContext(ctx).Model(profile).Association("Allergies").Replace(allergies)
}
