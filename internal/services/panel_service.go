package services

import (
	"enibar/internal/models"
	"enibar/internal/repositories"
)

// PanelService handles the quick-sale panels shown on the tills.
type PanelService struct {
	repo   repositories.PanelRepository
	events EventPublisher
}

// NewPanelService creates a new PanelService. events may be nil.
func NewPanelService(repo repositories.PanelRepository, events EventPublisher) *PanelService {
	return &PanelService{
		repo:   repo,
		events: events,
	}
}

// Add creates a panel and returns its id.
func (s *PanelService) Add(name string) (uint, error) {
	id, err := s.repo.Add(name)
	if err != nil {
		return 0, err
	}
	notify(s.events, KindPanel, ActionCreated, id, name)
	return id, nil
}

// Remove deletes the panels named name and their content.
func (s *PanelService) Remove(name string) error {
	if err := s.repo.Remove(name); err != nil {
		return err
	}
	notify(s.events, KindPanel, ActionDeleted, 0, name)
	return nil
}

// AddProduct puts a product on a panel.
func (s *PanelService) AddProduct(panelID, productID uint) error {
	if err := s.repo.AddProduct(panelID, productID); err != nil {
		return err
	}
	notify(s.events, KindPanel, ActionUpdated, panelID, "")
	return nil
}

// AddProducts puts several products on a panel, all or nothing.
func (s *PanelService) AddProducts(panelID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := s.repo.AddProducts(panelID, productIDs); err != nil {
		return err
	}
	notify(s.events, KindPanel, ActionUpdated, panelID, "")
	return nil
}

// DeleteProduct takes a product off a panel.
func (s *PanelService) DeleteProduct(panelID, productID uint) error {
	if err := s.repo.DeleteProduct(panelID, productID); err != nil {
		return err
	}
	notify(s.events, KindPanel, ActionUpdated, panelID, "")
	return nil
}

// DeleteProducts takes several products off a panel, all or nothing.
func (s *PanelService) DeleteProducts(panelID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := s.repo.DeleteProducts(panelID, productIDs); err != nil {
		return err
	}
	notify(s.events, KindPanel, ActionUpdated, panelID, "")
	return nil
}

// Get returns the panels matching filter.
func (s *PanelService) Get(filter repositories.PanelFilter) ([]models.Panel, error) {
	return s.repo.Get(filter)
}

// GetUnique returns the first panel matching filter.
func (s *PanelService) GetUnique(filter repositories.PanelFilter) (*models.Panel, error) {
	return s.repo.GetUnique(filter)
}

// GetContent returns the products on panels, with their category.
func (s *PanelService) GetContent(filter repositories.PanelContentFilter) ([]models.PanelContentEntry, error) {
	return s.repo.GetContent(filter)
}
