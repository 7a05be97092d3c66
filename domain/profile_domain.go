package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessUploadAvatar  = "avatar uploaded successfully"
	MessageFailedGetProfile     = "failed to retrieve profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedUploadAvatar   = "failed to upload avatar"

	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidPersons  = errors.New("count of persons must be at least 1")
)

type (
	UpdateProfileRequest struct {
		DietType       string   `json:"diet_type" validate:"omitempty"`
		Allergies      []string `json:"allergies" validate:"omitempty"`
		BudgetLimit    *float64 `json:"budget_limit" validate:"omitempty,gte=0"`
		CountOfPersons int      `json:"count_of_persons" validate:"omitempty,min=1"`
		Breakfast      *bool    `json:"breakfast" validate:"omitempty"`
		Lunch          *bool    `json:"lunch" validate:"omitempty"`
		Dinner         *bool    `json:"dinner" validate:"omitempty"`
		Dessert        *bool    `json:"dessert" validate:"omitempty"`
	}

	UploadAvatarRequest struct {
		Avatar *multipart.FileHeader `json:"avatar" form:"avatar" validate:"required"`
	}

	ProfileResponse struct {
		ID                  string     `json:"id"`
		DietType            string     `json:"diet_type,omitempty"`
		Allergies           []string   `json:"allergies"`
		BudgetLimit         *float64   `json:"budget_limit,omitempty"`
		CountOfPersons      int        `json:"count_of_persons"`
		Breakfast           bool       `json:"breakfast"`
		Lunch               bool       `json:"lunch"`
		Dinner              bool       `json:"dinner"`
		Dessert             bool       `json:"dessert"`
		SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
		SubscriptionActive  bool       `json:"subscription_active"`
		AvatarURL           string     `json:"avatar_url,omitempty"`
	}
)
