package repositories

import "enibar/internal/models"

// PanelRepository defines the interface for panel data access.
type PanelRepository interface {
	Add(name string) (uint, error)
	Remove(name string) error
	AddProduct(panelID, productID uint) error
	AddProducts(panelID uint, productIDs []uint) error
	DeleteProduct(panelID, productID uint) error
	DeleteProducts(panelID uint, productIDs []uint) error
	Get(filter PanelFilter) ([]models.Panel, error)
	GetUnique(filter PanelFilter) (*models.Panel, error)
	GetContent(filter PanelContentFilter) ([]models.PanelContentEntry, error)
}
