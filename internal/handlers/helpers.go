package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"enibar/internal/repositories"
	"enibar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, repositories.ErrEmptyName),
		errors.Is(err, repositories.ErrEmptyCredentials),
		errors.Is(err, services.ErrInvalidPercentage),
		errors.Is(err, services.ErrNegativePrice),
		errors.Is(err, services.ErrNegativeQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, repositories.ErrCategoryNotFound),
		errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrDescriptorNotFound),
		errors.Is(err, repositories.ErrPriceNotFound),
		errors.Is(err, repositories.ErrPanelNotFound),
		errors.Is(err, repositories.ErrAdminNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrLastUserManager),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError logs err and writes it with the status matching its kind.
func respondError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(statusOf(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseBody decodes and validates the request body into req. It writes the
// error response itself and reports whether the handler may continue.
func parseBody(c *fiber.Ctx, validate *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body on %s: %v", c.Path(), err)
		return false, badRequest(c, "Invalid request body", err)
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, badRequest(c, "Validation failed", err)
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parameter %s must be a positive integer", key)
	}
	return uint(id), nil
}

// paramName reads a percent-encoded route parameter such as a category name.
func paramName(c *fiber.Ctx, key string) (string, error) {
	name, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", fmt.Errorf("parameter %s is not properly escaped: %w", key, err)
	}
	return name, nil
}

func queryString(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	value := c.Query(key)
	return &value
}

func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be a positive integer", key)
	}
	id := uint(value)
	return &id, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be a boolean", key)
	}
	return &value, nil
}
