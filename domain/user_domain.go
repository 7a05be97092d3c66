package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetMe            = "user retrieved successfully"
	MessageSuccessUpdateUser       = "user updated successfully"
	MessageSuccessSendVerifyEmail  = "verification email sent"
	MessageSuccessVerifyEmail      = "email verified successfully"
	MessageFailedRegister          = "failed to register user"
	MessageFailedLogin             = "failed to login"
	MessageFailedGetMe             = "failed to retrieve user"
	MessageFailedUpdateUser        = "failed to update user"
	MessageFailedSendVerifyEmail   = "failed to send verification email"
	MessageFailedVerifyEmail       = "failed to verify email"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		DietType string `json:"diet_type" validate:"omitempty"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Name string `json:"name" validate:"omitempty"`
	}

	MeResponse struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		IsVerified bool   `json:"is_verified"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)
