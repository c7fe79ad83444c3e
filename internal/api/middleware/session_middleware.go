package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/service"
)

type SessionMiddleware struct {
	s   service.AuthService
	cfg config.Config
}

func NewSessionMiddleware(cfg config.Config, service service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{s: service, cfg: cfg}
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1,
	})
}

// RequireSession stores the session user in Locals("user_id") and the
// session itself in Locals("session").
func (m *SessionMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie",
			})
		}

		session, err := m.s.GetSession(c.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			ClearCookie(c, m.cfg.CookieName)
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals("user_id", session.UserID.String())
		c.Locals("session", session)
		return c.Next()
	}
}
