package repositories

import (
	"enibar/internal/models"

	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Get(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetUnique(filter ProductFilter) (*models.Product, error)
	Create(product *models.Product) error
	Rename(id uint, name string) error
	SetPercentage(id uint, percentage decimal.Decimal) error
	Delete(id uint) error
}
