package handlers

import (
	"fmt"

	"enibar/internal/models"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles HTTP requests for admin accounts.
type AdminHandler struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes. Every route requires canManage.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, canManage fiber.Handler) {
	adminRoutes := router.Group("/admins", canManage)
	adminRoutes.Get("/", h.HandleGetAdmins)
	adminRoutes.Post("/", h.HandleAddAdmin)
	adminRoutes.Delete("/:login", h.HandleRemoveAdmin)
	adminRoutes.Get("/:login/rights", h.HandleGetRights)
	adminRoutes.Put("/:login/rights", h.HandleSetRights)
	adminRoutes.Put("/:login/password", h.HandleChangePassword)
}

// CreateAdminRequest represents the request body for a new admin.
type CreateAdminRequest struct {
	Login    string `json:"login" validate:"required,max=127"`
	Password string `json:"password" validate:"required"`
}

// HandleGetAdmins lists admin logins.
func (h *AdminHandler) HandleGetAdmins(c *fiber.Ctx) error {
	logins, err := h.adminService.GetList()
	if err != nil {
		return respondError(c, "Could not retrieve admins", err)
	}
	return c.JSON(logins)
}

// HandleAddAdmin creates an admin without rights.
func (h *AdminHandler) HandleAddAdmin(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.adminService.Add(req.Login, req.Password); err != nil {
		return respondError(c, "Could not create admin", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Admin %s created successfully", req.Login),
		"login":   req.Login,
	})
}

// HandleRemoveAdmin deletes an admin.
func (h *AdminHandler) HandleRemoveAdmin(c *fiber.Ctx) error {
	login, err := paramName(c, "login")
	if err != nil {
		return badRequest(c, "Invalid login", err)
	}
	if err := h.adminService.Remove(login); err != nil {
		return respondError(c, "Could not remove admin", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Admin %s deleted successfully", login),
	})
}

// HandleGetRights returns the rights of an admin.
func (h *AdminHandler) HandleGetRights(c *fiber.Ctx) error {
	login, err := paramName(c, "login")
	if err != nil {
		return badRequest(c, "Invalid login", err)
	}
	rights, err := h.adminService.GetRights(login)
	if err != nil {
		return respondError(c, "Could not retrieve rights", err)
	}
	return c.JSON(rights)
}

// HandleSetRights overwrites the rights of an admin.
func (h *AdminHandler) HandleSetRights(c *fiber.Ctx) error {
	login, err := paramName(c, "login")
	if err != nil {
		return badRequest(c, "Invalid login", err)
	}
	var rights models.Rights
	if ok, err := parseBody(c, h.validate, &rights); !ok {
		return err
	}

	if err := h.adminService.SetRights(login, rights); err != nil {
		return respondError(c, "Could not update rights", err)
	}
	return c.JSON(rights)
}

// HandleChangePassword sets the password of another admin.
func (h *AdminHandler) HandleChangePassword(c *fiber.Ctx) error {
	login, err := paramName(c, "login")
	if err != nil {
		return badRequest(c, "Invalid login", err)
	}
	var req PasswordRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.adminService.ChangePassword(login, req.Password); err != nil {
		return respondError(c, "Could not change password", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Password of %s changed successfully", login),
	})
}
