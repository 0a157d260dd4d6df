package middleware

import (
	"errors"
	"log"
	"strings"

	"enibar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LoginKey is the fiber.Ctx Locals key holding the authenticated login.
const LoginKey = "login"

// AuthRequired is a Fiber middleware to check for a valid JWT token whose
// admin still exists.
func AuthRequired(adminService *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		login, err := adminService.Authenticate(token)
		switch {
		case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrUnknownAdmin):
			log.Printf("JWT authentication failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		case err != nil:
			log.Printf("Error authenticating request: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not authenticate request",
				"error":   err.Error(),
			})
		}

		c.Locals(LoginKey, login)
		return c.Next()
	}
}

// bearerToken extracts the token of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRight rejects requests whose admin does not currently hold right.
// It must run after AuthRequired.
func RequireRight(adminService *services.AdminService, right string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		login := CurrentLogin(c)
		ok, err := adminService.HasRight(login, right)
		if err != nil {
			log.Printf("Error checking right %s of %s: %v", right, login, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not check rights",
				"error":   err.Error(),
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Missing right " + right,
			})
		}
		return c.Next()
	}
}

// CurrentLogin returns the login stored by AuthRequired, or "".
func CurrentLogin(c *fiber.Ctx) string {
	login, _ := c.Locals(LoginKey).(string)
	return login
}
