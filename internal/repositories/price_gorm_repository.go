package repositories

import (
	"errors"
	"fmt"
	"strings"

	"enibar/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var priceEntryQuery = sq.
	Select(
		"prices.id AS id",
		"prices.product_id AS product_id",
		"prices.price_description_id AS descriptor_id",
		"price_description.label AS label",
		"price_description.quantity AS quantity",
		"prices.value AS value",
	).
	From("prices").
	Join("price_description ON price_description.id = prices.price_description_id").
	OrderBy("prices.product_id", "price_description.id")

// GORMPriceRepository is a GORM implementation of PriceRepository.
type GORMPriceRepository struct {
	db *gorm.DB
}

// NewGORMPriceRepository creates a new instance of GORMPriceRepository.
func NewGORMPriceRepository(db *gorm.DB) *GORMPriceRepository {
	return &GORMPriceRepository{
		db: db,
	}
}

// AddDescriptor creates a price descriptor for a category and a zero price
// for each product of that category.
func (r *GORMPriceRepository) AddDescriptor(label string, categoryID uint, quantity int) (uint, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, ErrEmptyName
	}
	descriptor := models.PriceDescriptor{Label: label, CategoryID: categoryID, Quantity: quantity}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Take(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Create(&descriptor).Error; err != nil {
			return err
		}

		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("category_id = ?", categoryID).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		prices := make([]models.Price, 0, len(productIDs))
		for _, productID := range productIDs {
			prices = append(prices, models.Price{DescriptorID: descriptor.ID, ProductID: productID, Value: decimal.Zero})
		}
		return tx.Create(&prices).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add price descriptor %s: %w", label, err)
	}
	return descriptor.ID, nil
}

// RenameDescriptor changes the label of a descriptor.
func (r *GORMPriceRepository) RenameDescriptor(id uint, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyName
	}
	res := r.db.Model(&models.PriceDescriptor{}).Where("id = ?", id).Update("label", label)
	if res.Error != nil {
		return fmt.Errorf("failed to rename price descriptor %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDescriptorNotFound
	}
	return nil
}

// RemoveDescriptor deletes a descriptor and all of its prices.
func (r *GORMPriceRepository) RemoveDescriptor(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_description_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.PriceDescriptor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDescriptorNotFound
		}
		return nil
	})
	if errors.Is(err, ErrDescriptorNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to remove price descriptor %d: %w", id, err)
	}
	return nil
}

// GetDescriptors returns the descriptors matching filter, ordered by id.
func (r *GORMPriceRepository) GetDescriptors(filter DescriptorFilter) ([]models.PriceDescriptor, error) {
	var descriptors []models.PriceDescriptor
	if err := filter.apply(r.db.Model(&models.PriceDescriptor{})).Order("id").Find(&descriptors).Error; err != nil {
		return nil, fmt.Errorf("failed to get price descriptors: %w", err)
	}
	return descriptors, nil
}

// Get returns the prices matching filter joined with their descriptor.
func (r *GORMPriceRepository) Get(filter PriceFilter) ([]models.PriceEntry, error) {
	query, err := rawQuery(r.db, priceEntryQuery, filter.eq())
	if err != nil {
		return nil, fmt.Errorf("failed to build price query: %w", err)
	}
	var entries []models.PriceEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}
	return entries, nil
}

// SetValue updates a single price.
func (r *GORMPriceRepository) SetValue(id uint, value decimal.Decimal) error {
	if err := setPriceValue(r.db, id, value); err != nil {
		if errors.Is(err, ErrPriceNotFound) {
			return err
		}
		return fmt.Errorf("failed to set price %d: %w", id, err)
	}
	return nil
}

// SetValues updates several prices in one transaction. Nothing is written if
// any update fails or targets a missing price.
func (r *GORMPriceRepository) SetValues(updates []models.PriceUpdate) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if err := setPriceValue(tx, update.ID, update.Value); err != nil {
				return fmt.Errorf("price %d: %w", update.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set prices: %w", err)
	}
	return nil
}

func setPriceValue(db *gorm.DB, id uint, value decimal.Decimal) error {
	res := db.Model(&models.Price{}).Where("id = ?", id).Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPriceNotFound
	}
	return nil
}
