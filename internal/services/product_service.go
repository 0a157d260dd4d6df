package services

import (
	"enibar/internal/models"
	"enibar/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// GetProducts retrieves the products matching filter.
func (s *ProductService) GetProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.Get(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product with a zero price for every price
// descriptor of its category.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if !validPercentage(product.Percentage) {
		return ErrInvalidPercentage
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	notify(s.events, KindProduct, ActionCreated, product.ID, product.Name)
	return nil
}

// RenameProduct changes the name of a product.
func (s *ProductService) RenameProduct(id uint, name string) error {
	if err := s.repo.Rename(id, name); err != nil {
		return err
	}
	notify(s.events, KindProduct, ActionUpdated, id, name)
	return nil
}

// SetPercentage changes the alcohol percentage of a product.
func (s *ProductService) SetPercentage(id uint, percentage decimal.Decimal) error {
	if !validPercentage(percentage) {
		return ErrInvalidPercentage
	}
	if err := s.repo.SetPercentage(id, percentage); err != nil {
		return err
	}
	notify(s.events, KindProduct, ActionUpdated, id, "")
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	notify(s.events, KindProduct, ActionDeleted, id, "")
	return nil
}

func validPercentage(percentage decimal.Decimal) bool {
	return !percentage.IsNegative() && percentage.LessThanOrEqual(decimal.NewFromInt(100))
}
