package repositories

import (
	"enibar/internal/models"

	"github.com/shopspring/decimal"
)

// PriceRepository defines the interface for price descriptor and price data access.
type PriceRepository interface {
	AddDescriptor(label string, categoryID uint, quantity int) (uint, error)
	RenameDescriptor(id uint, label string) error
	RemoveDescriptor(id uint) error
	GetDescriptors(filter DescriptorFilter) ([]models.PriceDescriptor, error)
	Get(filter PriceFilter) ([]models.PriceEntry, error)
	SetValue(id uint, value decimal.Decimal) error
	SetValues(updates []models.PriceUpdate) error
}
