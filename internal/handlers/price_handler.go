package handlers

import (
	"fmt"

	"enibar/internal/models"
	"enibar/internal/repositories"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PriceHandler handles HTTP requests for price descriptors and prices.
type PriceHandler struct {
	service  *services.PriceService
	validate *validator.Validate
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(service *services.PriceService) *PriceHandler {
	return &PriceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the price routes. Mutations require canManage.
func (h *PriceHandler) RegisterRoutes(router fiber.Router, canManage fiber.Handler) {
	descriptorRoutes := router.Group("/price-descriptors")
	descriptorRoutes.Get("/", h.HandleGetDescriptors)
	descriptorRoutes.Post("/", canManage, h.HandleAddDescriptor)
	descriptorRoutes.Put("/:id", canManage, h.HandleRenameDescriptor)
	descriptorRoutes.Delete("/:id", canManage, h.HandleRemoveDescriptor)

	priceRoutes := router.Group("/prices")
	priceRoutes.Get("/", h.HandleGetPrices)
	priceRoutes.Put("/", canManage, h.HandleSetValues)
	priceRoutes.Put("/:id", canManage, h.HandleSetValue)
}

// DescriptorRequest represents the request body for a new price descriptor.
type DescriptorRequest struct {
	Label      string `json:"label" validate:"required,max=127"`
	CategoryID uint   `json:"category_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=0"`
}

// LabelRequest carries a new descriptor label.
type LabelRequest struct {
	Label string `json:"label" validate:"required,max=127"`
}

// ValueRequest carries a price value.
type ValueRequest struct {
	Value *decimal.Decimal `json:"value" validate:"required"`
}

// SetValuesRequest carries several price updates applied together.
type SetValuesRequest struct {
	Prices []models.PriceUpdate `json:"prices" validate:"required,min=1,dive"`
}

// HandleGetDescriptors lists price descriptors, filtered by the id, label
// and category_id query parameters.
func (h *PriceHandler) HandleGetDescriptors(c *fiber.Ctx) error {
	var filter repositories.DescriptorFilter
	var err error
	if filter.ID, err = queryUint(c, "id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.CategoryID, err = queryUint(c, "category_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	filter.Label = queryString(c, "label")

	descriptors, err := h.service.GetDescriptors(filter)
	if err != nil {
		return respondError(c, "Could not retrieve price descriptors", err)
	}
	return c.JSON(descriptors)
}

// HandleAddDescriptor creates a price descriptor.
func (h *PriceHandler) HandleAddDescriptor(c *fiber.Ctx) error {
	var req DescriptorRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	id, err := h.service.AddDescriptor(req.Label, req.CategoryID, req.Quantity)
	if err != nil {
		return respondError(c, "Could not create price descriptor", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Price descriptor created successfully",
		"id":      id,
	})
}

// HandleRenameDescriptor changes the label of a price descriptor.
func (h *PriceHandler) HandleRenameDescriptor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid price descriptor id", err)
	}
	var req LabelRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.RenameDescriptor(id, req.Label); err != nil {
		return respondError(c, "Could not rename price descriptor", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Price descriptor %d renamed to %s", id, req.Label),
	})
}

// HandleRemoveDescriptor deletes a price descriptor and its prices.
func (h *PriceHandler) HandleRemoveDescriptor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid price descriptor id", err)
	}
	if err := h.service.RemoveDescriptor(id); err != nil {
		return respondError(c, "Could not remove price descriptor", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Price descriptor %d deleted successfully", id),
	})
}

// HandleGetPrices lists prices, filtered by the id, product_id and
// descriptor_id query parameters.
func (h *PriceHandler) HandleGetPrices(c *fiber.Ctx) error {
	var filter repositories.PriceFilter
	var err error
	if filter.ID, err = queryUint(c, "id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.ProductID, err = queryUint(c, "product_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.DescriptorID, err = queryUint(c, "descriptor_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}

	prices, err := h.service.GetPrices(filter)
	if err != nil {
		return respondError(c, "Could not retrieve prices", err)
	}
	return c.JSON(prices)
}

// HandleSetValue sets a single price.
func (h *PriceHandler) HandleSetValue(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid price id", err)
	}
	var req ValueRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.SetValue(id, *req.Value); err != nil {
		return respondError(c, "Could not set price", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Price %d set to %s", id, req.Value.String()),
	})
}

// HandleSetValues sets several prices at once, all or nothing.
func (h *PriceHandler) HandleSetValues(c *fiber.Ctx) error {
	var req SetValuesRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.SetValues(req.Prices); err != nil {
		return respondError(c, "Could not set prices", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d prices updated successfully", len(req.Prices)),
	})
}
