package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"
	"foodplan-backend/internal/utils"
	"foodplan-backend/internal/utils/mailing"
	"foodplan-backend/pkg/catalog"
	"foodplan-backend/pkg/jwt"
	"foodplan-backend/pkg/profile"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.MeResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error
		SendVerificationEmail(ctx context.Context, email string) error
		VerifyEmail(ctx context.Context, token string) error
	}

	userService struct {
		userRepository    UserRepository
		profileRepository profile.ProfileRepository
		catalogService    catalog.CatalogService
		jwtService        jwt.JWTService
	}
)

func NewUserService(
	userRepository UserRepository,
	profileRepository profile.ProfileRepository,
	catalogService catalog.CatalogService,
	jwtService jwt.JWTService,
) UserService {
	return &userService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		catalogService:    catalogService,
		jwtService:        jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	exists, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	newUser := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.RegisterResponse{}, err
	}

	// Every user gets exactly one profile, created at registration with
	// the default meal flags.
	newProfile := &entities.UserProfile{
		ID:             uuid.New(),
		UserID:         newUser.ID,
		CountOfPersons: 1,
		Breakfast:      true,
		Lunch:          true,
		Dinner:         true,
		Dessert:        false,
	}

	if req.DietType != "" {
		dietType, err := s.catalogService.ResolveDietType(ctx, req.DietType)
		if err != nil {
			return domain.RegisterResponse{}, err
		}
		newProfile.DietTypeID = &dietType.ID
	}

	if err := s.profileRepository.CreateProfile(ctx, newProfile); err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:    newUser.ID.String(),
		Name:  newUser.Name,
		Email: newUser.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	found, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(found.ID.String(), found.Role)

	return domain.LoginResponse{
		Token: token,
		Role:  found.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.MeResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MeResponse{}, domain.ErrUserNotFound
		}
		return domain.MeResponse{}, err
	}

	return domain.MeResponse{
		ID:         found.ID.String(),
		Name:       found.Name,
		Email:      found.Email,
		IsVerified: found.IsVerified,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Name != "" {
		found.Name = req.Name
	}

	return s.userRepository.UpdateUser(ctx, found)
}

func (s *userService) SendVerificationEmail(ctx context.Context, email string) error {
	found, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenVerification(map[string]any{
		"user_id": found.ID.String(),
	}, 24*time.Hour)
	if err != nil {
		return err
	}

	verifyLink := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Confirm your email address by following <a href=%q>this link</a>.</p>",
		found.Name, verifyLink,
	)

	return mailing.SendMail(found.Email, "Verify your email", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenVerification(token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	found.IsVerified = true
	return s.userRepository.UpdateUser(ctx, found)
}
