package services

import (
	"enibar/internal/models"
	"enibar/internal/repositories"

	"github.com/shopspring/decimal"
)

// PriceService handles price descriptors and product prices.
type PriceService struct {
	repo   repositories.PriceRepository
	events EventPublisher
}

// NewPriceService creates a new PriceService. events may be nil.
func NewPriceService(repo repositories.PriceRepository, events EventPublisher) *PriceService {
	return &PriceService{
		repo:   repo,
		events: events,
	}
}

// AddDescriptor creates a price descriptor for a category.
func (s *PriceService) AddDescriptor(label string, categoryID uint, quantity int) (uint, error) {
	if quantity < 0 {
		return 0, ErrNegativeQuantity
	}
	id, err := s.repo.AddDescriptor(label, categoryID, quantity)
	if err != nil {
		return 0, err
	}
	notify(s.events, KindDescriptor, ActionCreated, id, label)
	return id, nil
}

// RenameDescriptor changes the label of a price descriptor.
func (s *PriceService) RenameDescriptor(id uint, label string) error {
	if err := s.repo.RenameDescriptor(id, label); err != nil {
		return err
	}
	notify(s.events, KindDescriptor, ActionUpdated, id, label)
	return nil
}

// RemoveDescriptor deletes a price descriptor and its prices.
func (s *PriceService) RemoveDescriptor(id uint) error {
	if err := s.repo.RemoveDescriptor(id); err != nil {
		return err
	}
	notify(s.events, KindDescriptor, ActionDeleted, id, "")
	return nil
}

// GetDescriptors returns the price descriptors matching filter.
func (s *PriceService) GetDescriptors(filter repositories.DescriptorFilter) ([]models.PriceDescriptor, error) {
	return s.repo.GetDescriptors(filter)
}

// GetPrices returns the prices matching filter.
func (s *PriceService) GetPrices(filter repositories.PriceFilter) ([]models.PriceEntry, error) {
	return s.repo.Get(filter)
}

// SetValue sets the value of a single price.
func (s *PriceService) SetValue(id uint, value decimal.Decimal) error {
	if value.IsNegative() {
		return ErrNegativePrice
	}
	if err := s.repo.SetValue(id, value); err != nil {
		return err
	}
	notify(s.events, KindPrice, ActionUpdated, id, "")
	return nil
}

// SetValues sets several prices at once. Either all of them are written or none.
func (s *PriceService) SetValues(updates []models.PriceUpdate) error {
	for _, update := range updates {
		if update.Value.IsNegative() {
			return ErrNegativePrice
		}
	}
	if err := s.repo.SetValues(updates); err != nil {
		return err
	}
	for _, update := range updates {
		notify(s.events, KindPrice, ActionUpdated, update.ID, "")
	}
	return nil
}
