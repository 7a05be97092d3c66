package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"
	"foodplan-backend/internal/utils/storage"
	"foodplan-backend/pkg/catalog"

	"gorm.io/gorm"
)

type (
	ProfileService interface {
		GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error)
		UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		catalogService    catalog.CatalogService
		s3                storage.AwsS3
	}
)

func NewProfileService(profileRepository ProfileRepository, catalogService catalog.CatalogService, s3 storage.AwsS3) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		catalogService:    catalogService,
		s3:                s3,
	}
}

func toProfileResponse(profile *entities.UserProfile) domain.ProfileResponse {
	res := domain.ProfileResponse{
		ID:                  profile.ID.String(),
		BudgetLimit:         profile.BudgetLimit,
		CountOfPersons:      profile.CountOfPersons,
		Breakfast:           profile.Breakfast,
		Lunch:               profile.Lunch,
		Dinner:              profile.Dinner,
		Dessert:             profile.Dessert,
		SubscriptionEndDate: profile.SubscriptionEndDate,
		SubscriptionActive:  profile.HasSubscription(time.Now()),
		AvatarURL:           profile.AvatarURL,
		Allergies:           []string{},
	}
	if profile.DietType != nil {
		res.DietType = profile.DietType.Name
	}
	for _, allergy := range profile.Allergies {
		res.Allergies = append(res.Allergies, allergy.Name)
	}
	return res
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrProfileNotFound
		}
		return domain.ProfileResponse{}, err
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrProfileNotFound
		}
		return domain.ProfileResponse{}, err
	}

	if req.DietType != "" {
		dietType, err := s.catalogService.ResolveDietType(ctx, req.DietType)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		profile.DietTypeID = &dietType.ID
		profile.DietType = dietType
	}

	if req.BudgetLimit != nil {
		profile.BudgetLimit = req.BudgetLimit
	}
	if req.CountOfPersons > 0 {
		profile.CountOfPersons = req.CountOfPersons
	}
	if req.Breakfast != nil {
		profile.Breakfast = *req.Breakfast
	}
	if req.Lunch != nil {
		profile.Lunch = *req.Lunch
	}
	if req.Dinner != nil {
		profile.Dinner = *req.Dinner
	}
	if req.Dessert != nil {
		profile.Dessert = *req.Dessert
	}

	if err := s.profileRepository.UpdateProfile(ctx, profile); err != nil {
		return domain.ProfileResponse{}, err
	}

	if req.Allergies != nil {
		allergies := make([]*entities.Allergy, 0, len(req.Allergies))
		for _, name := range req.Allergies {
			allergy, err := s.catalogService.ResolveAllergy(ctx, name)
			if err != nil {
				return domain.ProfileResponse{}, err
			}
			allergies = append(allergies, allergy)
		}
		if err := s.profileRepository.ReplaceAllergies(ctx, profile, allergies); err != nil {
			return domain.ProfileResponse{}, err
		}
		profile.Allergies = allergies
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrProfileNotFound
		}
		return "", err
	}

	fileName := fmt.Sprintf("avatar-%s", profile.ID.String())
	var objectKey string
	var uploadErr error

	if profile.AvatarURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(profile.AvatarURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Avatar, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Avatar, "avatars", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Avatar, "avatars", storage.AllowImage...)
	}
	if uploadErr != nil {
		return "", uploadErr
	}

	profile.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.profileRepository.UpdateProfile(ctx, profile); err != nil {
		return "", err
	}

	return profile.AvatarURL, nil
}
