package repositories

import "enibar/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Add(name string) (uint, error)
	SetAlcoholic(id uint, alcoholic bool) error
	SetColor(name, color string) error
	Rename(oldName, newName string) error
	Remove(name string) error
	Get(filter CategoryFilter) ([]models.Category, error)
	GetUnique(filter CategoryFilter) (*models.Category, error)
}
