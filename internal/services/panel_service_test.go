package services_test

import (
	"testing"

	"enibar/internal/models"
	"enibar/internal/repositories"
	"enibar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPanelRepository is a mock implementation of repositories.PanelRepository
type MockPanelRepository struct {
	mock.Mock
}

func (m *MockPanelRepository) Add(name string) (uint, error) {
	args := m.Called(name)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockPanelRepository) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockPanelRepository) AddProduct(panelID, productID uint) error {
	args := m.Called(panelID, productID)
	return args.Error(0)
}

func (m *MockPanelRepository) AddProducts(panelID uint, productIDs []uint) error {
	args := m.Called(panelID, productIDs)
	return args.Error(0)
}

func (m *MockPanelRepository) DeleteProduct(panelID, productID uint) error {
	args := m.Called(panelID, productID)
	return args.Error(0)
}

func (m *MockPanelRepository) DeleteProducts(panelID uint, productIDs []uint) error {
	args := m.Called(panelID, productIDs)
	return args.Error(0)
}

func (m *MockPanelRepository) Get(filter repositories.PanelFilter) ([]models.Panel, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Panel), args.Error(1)
}

func (m *MockPanelRepository) GetUnique(filter repositories.PanelFilter) (*models.Panel, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panel), args.Error(1)
}

func (m *MockPanelRepository) GetContent(filter repositories.PanelContentFilter) ([]models.PanelContentEntry, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.PanelContentEntry), args.Error(1)
}

func TestPanelService_AddProducts(t *testing.T) {
	mockRepo := new(MockPanelRepository)
	events := new(MockEventPublisher)
	service := services.NewPanelService(mockRepo, events)

	mockRepo.On("AddProducts", uint(1), []uint{1, 2, 3}).Return(nil).Once()
	events.On("PublishCatalogEvent", eventOf(services.KindPanel, services.ActionUpdated)).Return(nil).Once()

	assert.NoError(t, service.AddProducts(1, []uint{1, 2, 3}))
	assert.NoError(t, service.AddProducts(1, nil))

	mockRepo.On("AddProducts", uint(2), []uint{9}).Return(repositories.ErrProductNotFound).Once()
	assert.ErrorIs(t, service.AddProducts(2, []uint{9}), repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestPanelService_DeleteProducts(t *testing.T) {
	mockRepo := new(MockPanelRepository)
	service := services.NewPanelService(mockRepo, nil)

	mockRepo.On("DeleteProducts", uint(1), []uint{2}).Return(nil).Once()
	mockRepo.On("DeleteProduct", uint(1), uint(3)).Return(nil).Once()

	assert.NoError(t, service.DeleteProducts(1, []uint{2}))
	assert.NoError(t, service.DeleteProduct(1, 3))
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteProducts", uint(1), []uint(nil))
}

func TestPanelService_AddAndRemove(t *testing.T) {
	mockRepo := new(MockPanelRepository)
	events := new(MockEventPublisher)
	service := services.NewPanelService(mockRepo, events)

	mockRepo.On("Add", "Menu1").Return(uint(4), nil).Once()
	mockRepo.On("Remove", "Menu1").Return(nil).Once()
	events.On("PublishCatalogEvent", eventOf(services.KindPanel, services.ActionCreated)).Return(nil).Once()
	events.On("PublishCatalogEvent", eventOf(services.KindPanel, services.ActionDeleted)).Return(nil).Once()

	id, err := service.Add("Menu1")
	assert.NoError(t, err)
	assert.Equal(t, uint(4), id)
	assert.NoError(t, service.Remove("Menu1"))

	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}
