package repositories

import (
	"errors"
	"fmt"
	"strings"

	"enibar/internal/models"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

var panelContentQuery = sq.
	Select(
		"panel_content.panel_id AS panel_id",
		"products.id AS product_id",
		"products.name AS product_name",
		"categories.id AS category_id",
		"categories.name AS category_name",
	).
	From("panel_content").
	Join("products ON products.id = panel_content.product_id").
	Join("categories ON categories.id = products.category_id").
	OrderBy("panel_content.panel_id", "products.id")

// GORMPanelRepository is a GORM implementation of PanelRepository.
type GORMPanelRepository struct {
	db *gorm.DB
}

// NewGORMPanelRepository creates a new instance of GORMPanelRepository.
func NewGORMPanelRepository(db *gorm.DB) *GORMPanelRepository {
	return &GORMPanelRepository{
		db: db,
	}
}

// Add creates a panel and returns its id.
func (r *GORMPanelRepository) Add(name string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	panel := models.Panel{Name: name}
	if err := r.db.Create(&panel).Error; err != nil {
		return 0, fmt.Errorf("failed to create panel %s: %w", name, err)
	}
	return panel.ID, nil
}

// Remove deletes the panels named name and their content.
func (r *GORMPanelRepository) Remove(name string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var panelIDs []uint
		if err := tx.Model(&models.Panel{}).Where("name = ?", name).Pluck("id", &panelIDs).Error; err != nil {
			return err
		}
		if len(panelIDs) > 0 {
			if err := tx.Where("panel_id IN ?", panelIDs).Delete(&models.PanelContent{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("name = ?", name).Delete(&models.Panel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to remove panel %s: %w", name, err)
	}
	return nil
}

// AddProduct associates one product with a panel.
func (r *GORMPanelRepository) AddProduct(panelID, productID uint) error {
	return r.AddProducts(panelID, []uint{productID})
}

// AddProducts associates products with a panel in one transaction. A single
// failing insert rolls back the whole batch.
func (r *GORMPanelRepository) AddProducts(panelID uint, productIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := panelExists(tx, panelID); err != nil {
			return err
		}
		for _, productID := range productIDs {
			var product models.Product
			if err := tx.Select("id").Take(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
				}
				return err
			}
			if err := tx.Create(&models.PanelContent{PanelID: panelID, ProductID: productID}).Error; err != nil {
				return fmt.Errorf("product %d: %w", productID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add products to panel %d: %w", panelID, err)
	}
	return nil
}

// DeleteProduct removes one product from a panel. Removing an absent pair succeeds.
func (r *GORMPanelRepository) DeleteProduct(panelID, productID uint) error {
	err := r.db.Where("panel_id = ? AND product_id = ?", panelID, productID).Delete(&models.PanelContent{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete product %d from panel %d: %w", productID, panelID, err)
	}
	return nil
}

// DeleteProducts removes products from a panel in one transaction.
func (r *GORMPanelRepository) DeleteProducts(panelID uint, productIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, productID := range productIDs {
			if err := tx.Where("panel_id = ? AND product_id = ?", panelID, productID).Delete(&models.PanelContent{}).Error; err != nil {
				return fmt.Errorf("product %d: %w", productID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete products from panel %d: %w", panelID, err)
	}
	return nil
}

// Get returns the panels matching filter, ordered by id.
func (r *GORMPanelRepository) Get(filter PanelFilter) ([]models.Panel, error) {
	var panels []models.Panel
	if err := filter.apply(r.db.Model(&models.Panel{})).Order("id").Find(&panels).Error; err != nil {
		return nil, fmt.Errorf("failed to get panels: %w", err)
	}
	return panels, nil
}

// GetUnique returns the first panel matching filter.
func (r *GORMPanelRepository) GetUnique(filter PanelFilter) (*models.Panel, error) {
	var panel models.Panel
	if err := filter.apply(r.db.Model(&models.Panel{})).Order("id").Take(&panel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, fmt.Errorf("failed to get panel: %w", err)
	}
	return &panel, nil
}

// GetContent returns panel content rows joined with their product and category.
func (r *GORMPanelRepository) GetContent(filter PanelContentFilter) ([]models.PanelContentEntry, error) {
	query, err := rawQuery(r.db, panelContentQuery, filter.eq())
	if err != nil {
		return nil, fmt.Errorf("failed to build panel content query: %w", err)
	}
	var entries []models.PanelContentEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get panel content: %w", err)
	}
	return entries, nil
}

func panelExists(tx *gorm.DB, panelID uint) error {
	var panel models.Panel
	if err := tx.Take(&panel, "id = ?", panelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPanelNotFound
		}
		return err
	}
	return nil
}
