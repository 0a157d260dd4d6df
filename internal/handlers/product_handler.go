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

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Mutations require canManage.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, canManage fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", canManage, h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id/name", canManage, h.HandleRenameProduct)
	productRoutes.Put("/:id/percentage", canManage, h.HandleSetPercentage)
	productRoutes.Delete("/:id", canManage, h.HandleDeleteProduct)
}

// PercentageRequest carries an alcohol percentage.
type PercentageRequest struct {
	Percentage *decimal.Decimal `json:"percentage" validate:"required"`
}

// HandleGetProducts lists products, filtered by the id, name and
// category_id query parameters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var filter repositories.ProductFilter
	var err error
	if filter.ID, err = queryUint(c, "id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.CategoryID, err = queryUint(c, "category_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	filter.Name = queryString(c, "name")

	products, err := h.service.GetProducts(filter)
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product id", err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := parseBody(c, h.validate, &product); !ok {
		return err
	}
	product.ID = 0

	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleRenameProduct renames a product.
func (h *ProductHandler) HandleRenameProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product id", err)
	}
	var req NameRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.RenameProduct(id, req.Name); err != nil {
		return respondError(c, "Could not rename product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d renamed to %s", id, req.Name),
	})
}

// HandleSetPercentage sets the alcohol percentage of a product.
func (h *ProductHandler) HandleSetPercentage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product id", err)
	}
	var req PercentageRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.SetPercentage(id, *req.Percentage); err != nil {
		return respondError(c, "Could not set product percentage", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Percentage of product %d set to %s", id, req.Percentage.String()),
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product id", err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}
