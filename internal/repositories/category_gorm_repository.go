package repositories

import (
	"errors"
	"fmt"
	"strings"

	"enibar/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Add creates a category and returns its id. Duplicate names are rejected by
// the unique index.
func (r *GORMCategoryRepository) Add(name string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	category := models.Category{Name: name}
	if err := r.db.Create(&category).Error; err != nil {
		return 0, fmt.Errorf("failed to create category %s: %w", name, err)
	}
	return category.ID, nil
}

// SetAlcoholic updates the alcoholic flag. It succeeds whether or not a row matched.
func (r *GORMCategoryRepository) SetAlcoholic(id uint, alcoholic bool) error {
	err := r.db.Model(&models.Category{}).Where("id = ?", id).Update("alcoholic", alcoholic).Error
	if err != nil {
		return fmt.Errorf("failed to set alcoholic flag of category %d: %w", id, err)
	}
	return nil
}

// SetColor updates the display color. It succeeds whether or not a row matched.
func (r *GORMCategoryRepository) SetColor(name, color string) error {
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Update("color", color).Error
	if err != nil {
		return fmt.Errorf("failed to set color of category %s: %w", name, err)
	}
	return nil
}

// Rename renames the category matching oldName exactly.
func (r *GORMCategoryRepository) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	err := r.db.Model(&models.Category{}).Where("name = ?", oldName).Update("name", newName).Error
	if err != nil {
		return fmt.Errorf("failed to rename category %s: %w", oldName, err)
	}
	return nil
}

// Remove deletes the category matching name exactly, along with its products,
// their prices and panel entries, and its price descriptors.
func (r *GORMCategoryRepository) Remove(name string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			var productIDs []uint
			if err := tx.Model(&models.Product{}).Where("category_id IN ?", categoryIDs).Pluck("id", &productIDs).Error; err != nil {
				return err
			}
			if len(productIDs) > 0 {
				if err := tx.Where("product_id IN ?", productIDs).Delete(&models.Price{}).Error; err != nil {
					return err
				}
				if err := tx.Where("product_id IN ?", productIDs).Delete(&models.PanelContent{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", productIDs).Delete(&models.Product{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.PriceDescriptor{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("name = ?", name).Delete(&models.Category{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to remove category %s: %w", name, err)
	}
	return nil
}

// Get returns the categories matching filter, ordered by id.
func (r *GORMCategoryRepository) Get(filter CategoryFilter) ([]models.Category, error) {
	var categories []models.Category
	if err := filter.apply(r.db.Model(&models.Category{})).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetUnique returns the first category matching filter.
func (r *GORMCategoryRepository) GetUnique(filter CategoryFilter) (*models.Category, error) {
	var category models.Category
	if err := filter.apply(r.db.Model(&models.Category{})).Order("id").Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}
