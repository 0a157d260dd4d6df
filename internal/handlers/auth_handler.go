package handlers

import (
	"enibar/internal/middleware"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(adminService *services.AdminService) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the authentication routes. authRequired guards
// the routes acting on the caller's own account.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Put("/password", authRequired, h.HandleChangePassword)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordRequest carries a new password.
type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles admin login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	token, err := h.adminService.Login(req.Login, req.Password)
	if err != nil {
		return respondError(c, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleChangePassword changes the password of the authenticated admin.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req PasswordRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	login := middleware.CurrentLogin(c)
	if err := h.adminService.ChangePassword(login, req.Password); err != nil {
		return respondError(c, "Could not change password", err)
	}
	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}
