package services

import (
	"enibar/internal/models"
	"enibar/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo   repositories.CategoryRepository
	events EventPublisher
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(repo repositories.CategoryRepository, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:   repo,
		events: events,
	}
}

// Add creates a category and returns its id.
func (s *CategoryService) Add(name string) (uint, error) {
	id, err := s.repo.Add(name)
	if err != nil {
		return 0, err
	}
	notify(s.events, KindCategory, ActionCreated, id, name)
	return id, nil
}

// SetAlcoholic marks a category as alcoholic or not.
func (s *CategoryService) SetAlcoholic(id uint, alcoholic bool) error {
	if err := s.repo.SetAlcoholic(id, alcoholic); err != nil {
		return err
	}
	notify(s.events, KindCategory, ActionUpdated, id, "")
	return nil
}

// SetColor sets the display color of a category.
func (s *CategoryService) SetColor(name, color string) error {
	if err := s.repo.SetColor(name, color); err != nil {
		return err
	}
	notify(s.events, KindCategory, ActionUpdated, 0, name)
	return nil
}

// Rename renames a category.
func (s *CategoryService) Rename(oldName, newName string) error {
	if err := s.repo.Rename(oldName, newName); err != nil {
		return err
	}
	notify(s.events, KindCategory, ActionUpdated, 0, newName)
	return nil
}

// Remove deletes a category and everything that belongs to it.
func (s *CategoryService) Remove(name string) error {
	if err := s.repo.Remove(name); err != nil {
		return err
	}
	notify(s.events, KindCategory, ActionDeleted, 0, name)
	return nil
}

// Get returns the categories matching filter.
func (s *CategoryService) Get(filter repositories.CategoryFilter) ([]models.Category, error) {
	return s.repo.Get(filter)
}

// GetUnique returns the first category matching filter.
func (s *CategoryService) GetUnique(filter repositories.CategoryFilter) (*models.Category, error) {
	return s.repo.GetUnique(filter)
}
