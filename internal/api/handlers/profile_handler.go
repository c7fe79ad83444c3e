package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: service}
}

func (h *ProfileHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.s.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profiles)
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.s.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var update transfer.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	profile, err := h.s.UpdateDisplayName(c.Context(), GetUserID(c), update.DisplayName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateAvatar(c *fiber.Ctx) error {
	avatar, err := formFile(c, "avatar")
	if err != nil {
		return writeError(c, err)
	}

	profile, err := h.s.UpdateAvatar(c.Context(), GetUserID(c), avatar)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}
