package repositories

import (
	"errors"
	"fmt"
	"strings"

	"enibar/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Get retrieves the products matching filter, ordered by id.
func (r *GORMProductRepository) Get(filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := filter.apply(r.db.Model(&models.Product{})).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	return r.GetUnique(ProductFilter{ID: &id})
}

// GetUnique retrieves the first product matching filter.
func (r *GORMProductRepository) GetUnique(filter ProductFilter) (*models.Product, error) {
	var product models.Product
	if err := filter.apply(r.db.Model(&models.Product{})).Order("id").Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// Create inserts the product and a zero price for every descriptor of its
// category, in one transaction.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return ErrEmptyName
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Take(&category, "id = ?", product.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		var descriptorIDs []uint
		if err := tx.Model(&models.PriceDescriptor{}).Where("category_id = ?", product.CategoryID).Pluck("id", &descriptorIDs).Error; err != nil {
			return err
		}
		if len(descriptorIDs) == 0 {
			return nil
		}
		prices := make([]models.Price, 0, len(descriptorIDs))
		for _, descriptorID := range descriptorIDs {
			prices = append(prices, models.Price{DescriptorID: descriptorID, ProductID: product.ID, Value: decimal.Zero})
		}
		return tx.Create(&prices).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", product.Name, err)
	}
	return nil
}

// Rename changes the name of a product.
func (r *GORMProductRepository) Rename(id uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return fmt.Errorf("failed to rename product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SetPercentage updates the alcohol percentage of a product.
func (r *GORMProductRepository) SetPercentage(id uint, percentage decimal.Decimal) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Update("percentage", percentage)
	if res.Error != nil {
		return fmt.Errorf("failed to set percentage of product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete deletes a product with its prices and panel entries.
func (r *GORMProductRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.PanelContent{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	if errors.Is(err, ErrProductNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
