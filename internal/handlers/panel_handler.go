package handlers

import (
	"fmt"

	"enibar/internal/repositories"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PanelHandler handles HTTP requests for panels and their content.
type PanelHandler struct {
	service  *services.PanelService
	validate *validator.Validate
}

// NewPanelHandler creates a new PanelHandler.
func NewPanelHandler(service *services.PanelService) *PanelHandler {
	return &PanelHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the panel routes. Mutations require canManage.
func (h *PanelHandler) RegisterRoutes(router fiber.Router, canManage fiber.Handler) {
	panelRoutes := router.Group("/panels")
	panelRoutes.Get("/", h.HandleGetPanels)
	panelRoutes.Post("/", canManage, h.HandleAddPanel)
	panelRoutes.Get("/content", h.HandleGetContent)
	panelRoutes.Delete("/:name", canManage, h.HandleRemovePanel)
	panelRoutes.Post("/:id/products", canManage, h.HandleAddProducts)
	panelRoutes.Delete("/:id/products", canManage, h.HandleDeleteProducts)
	panelRoutes.Post("/:id/products/:product_id", canManage, h.HandleAddProduct)
	panelRoutes.Delete("/:id/products/:product_id", canManage, h.HandleDeleteProduct)
}

// ProductIDsRequest carries the products of a batch panel update.
type ProductIDsRequest struct {
	ProductIDs []uint `json:"product_ids" validate:"required,min=1"`
}

// HandleGetPanels lists panels, filtered by the id and name query parameters.
func (h *PanelHandler) HandleGetPanels(c *fiber.Ctx) error {
	var filter repositories.PanelFilter
	var err error
	if filter.ID, err = queryUint(c, "id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	filter.Name = queryString(c, "name")

	panels, err := h.service.Get(filter)
	if err != nil {
		return respondError(c, "Could not retrieve panels", err)
	}
	return c.JSON(panels)
}

// HandleGetContent lists panel content, filtered by the panel_id and
// product_id query parameters.
func (h *PanelHandler) HandleGetContent(c *fiber.Ctx) error {
	var filter repositories.PanelContentFilter
	var err error
	if filter.PanelID, err = queryUint(c, "panel_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}
	if filter.ProductID, err = queryUint(c, "product_id"); err != nil {
		return badRequest(c, "Invalid filter", err)
	}

	content, err := h.service.GetContent(filter)
	if err != nil {
		return respondError(c, "Could not retrieve panel content", err)
	}
	return c.JSON(content)
}

// HandleAddPanel creates a panel.
func (h *PanelHandler) HandleAddPanel(c *fiber.Ctx) error {
	var req NameRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	id, err := h.service.Add(req.Name)
	if err != nil {
		return respondError(c, "Could not create panel", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Panel created successfully",
		"id":      id,
	})
}

// HandleRemovePanel deletes the panels with the given name.
func (h *PanelHandler) HandleRemovePanel(c *fiber.Ctx) error {
	name, err := paramName(c, "name")
	if err != nil {
		return badRequest(c, "Invalid panel name", err)
	}
	if err := h.service.Remove(name); err != nil {
		return respondError(c, "Could not remove panel", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Panel %s deleted successfully", name),
	})
}

// HandleAddProducts puts several products on a panel.
func (h *PanelHandler) HandleAddProducts(c *fiber.Ctx) error {
	panelID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid panel id", err)
	}
	var req ProductIDsRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.AddProducts(panelID, req.ProductIDs); err != nil {
		return respondError(c, "Could not add products to panel", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("%d products added to panel %d", len(req.ProductIDs), panelID),
	})
}

// HandleDeleteProducts takes several products off a panel.
func (h *PanelHandler) HandleDeleteProducts(c *fiber.Ctx) error {
	panelID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid panel id", err)
	}
	var req ProductIDsRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.DeleteProducts(panelID, req.ProductIDs); err != nil {
		return respondError(c, "Could not delete products from panel", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d products deleted from panel %d", len(req.ProductIDs), panelID),
	})
}

// HandleAddProduct puts one product on a panel.
func (h *PanelHandler) HandleAddProduct(c *fiber.Ctx) error {
	panelID, productID, err := panelProductParams(c)
	if err != nil {
		return badRequest(c, "Invalid panel or product id", err)
	}
	if err := h.service.AddProduct(panelID, productID); err != nil {
		return respondError(c, "Could not add product to panel", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d added to panel %d", productID, panelID),
	})
}

// HandleDeleteProduct takes one product off a panel.
func (h *PanelHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	panelID, productID, err := panelProductParams(c)
	if err != nil {
		return badRequest(c, "Invalid panel or product id", err)
	}
	if err := h.service.DeleteProduct(panelID, productID); err != nil {
		return respondError(c, "Could not delete product from panel", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted from panel %d", productID, panelID),
	})
}

func panelProductParams(c *fiber.Ctx) (uint, uint, error) {
	panelID, err := paramID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return 0, 0, err
	}
	return panelID, productID, nil
}
