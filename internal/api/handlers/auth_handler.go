package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/api/middleware"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	session, token, err := h.s.SignInWithPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  session.ExpiresAt,
	})

	return c.JSON(session)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearCookie(c, h.cfg.CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, ok := c.Locals("session").(*transfer.Session)
	if !ok {
		return writeError(c, service.ErrNoSession)
	}
	return c.JSON(session)
}
