package handlers

import (
	"foodplan-backend/domain"
	"foodplan-backend/internal/api/presenters"
	"foodplan-backend/pkg/profile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		UploadAvatar(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
		validator      *validator.Validate
	}
)

func NewProfileHandler(profileService profile.ProfileService, validator *validator.Validate) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateProfileRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	res, err := h.profileService.UpdateProfile(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *profileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadAvatarRequest)

	file, err := c.FormFile("avatar")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Avatar = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadAvatar, err)
	}

	avatarURL, err := h.profileService.UploadAvatar(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadAvatar, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"avatar_url": avatarURL}, fiber.StatusOK, domain.MessageSuccessUploadAvatar)
}
