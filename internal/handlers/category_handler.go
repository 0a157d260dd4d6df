package handlers

import (
	"fmt"

	"enibar/internal/repositories"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. Mutations require canManage.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, canManage fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Post("/", canManage, h.HandleAddCategory)
	categoryRoutes.Get("/:name", h.HandleGetCategory)
	categoryRoutes.Put("/:name", canManage, h.HandleRenameCategory)
	categoryRoutes.Delete("/:name", canManage, h.HandleRemoveCategory)
	categoryRoutes.Put("/:name/color", canManage, h.HandleSetColor)
	categoryRoutes.Put("/:id/alcoholic", canManage, h.HandleSetAlcoholic)
}

// NameRequest carries a name or a new name.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=127"`
}

// ColorRequest carries a display color.
type ColorRequest struct {
	Color string `json:"color" validate:"required,max=32"`
}

// AlcoholicRequest carries the alcoholic flag of a category.
type AlcoholicRequest struct {
	Alcoholic *bool `json:"alcoholic" validate:"required"`
}

// HandleGetCategories lists categories, filtered by the id, name, alcoholic
// and color query parameters.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	var filter repositories.CategoryFilter
	var err error
	if filter.ID, err = queryUint(c, "id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.Alcoholic, err = queryBool(c, "alcoholic"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	filter.Name = queryString(c, "name")
	filter.Color = queryString(c, "color")

	categories, err := h.service.Get(filter)
	if err != nil {
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetCategory returns the category with the given name.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	name, err := paramName(c, "name")
	if err != nil {
		return badRequest(c, "Invalid category name", err)
	}
	category, err := h.service.GetUnique(repositories.CategoryFilter{Name: &name})
	if err != nil {
		return respondError(c, "Could not retrieve category", err)
	}
	return c.JSON(category)
}

// HandleAddCategory creates a category.
func (h *CategoryHandler) HandleAddCategory(c *fiber.Ctx) error {
	var req NameRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	id, err := h.service.Add(req.Name)
	if err != nil {
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"id":      id,
	})
}

// HandleRenameCategory renames a category.
func (h *CategoryHandler) HandleRenameCategory(c *fiber.Ctx) error {
	name, err := paramName(c, "name")
	if err != nil {
		return badRequest(c, "Invalid category name", err)
	}
	var req NameRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.Rename(name, req.Name); err != nil {
		return respondError(c, "Could not rename category", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %s renamed to %s", name, req.Name),
	})
}

// HandleRemoveCategory deletes a category with its products and prices.
func (h *CategoryHandler) HandleRemoveCategory(c *fiber.Ctx) error {
	name, err := paramName(c, "name")
	if err != nil {
		return badRequest(c, "Invalid category name", err)
	}
	if err := h.service.Remove(name); err != nil {
		return respondError(c, "Could not remove category", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %s deleted successfully", name),
	})
}

// HandleSetColor sets the display color of a category.
func (h *CategoryHandler) HandleSetColor(c *fiber.Ctx) error {
	name, err := paramName(c, "name")
	if err != nil {
		return badRequest(c, "Invalid category name", err)
	}
	var req ColorRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.SetColor(name, req.Color); err != nil {
		return respondError(c, "Could not set category color", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Color of %s set to %s", name, req.Color),
	})
}

// HandleSetAlcoholic sets the alcoholic flag of a category.
func (h *CategoryHandler) HandleSetAlcoholic(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid category id", err)
	}
	var req AlcoholicRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.SetAlcoholic(id, *req.Alcoholic); err != nil {
		return respondError(c, "Could not set alcoholic flag", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %d updated successfully", id),
	})
}
