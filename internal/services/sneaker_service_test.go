package services_test

import (
	"fmt"
	"testing"

	"sneakershop/internal/models"
	"sneakershop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSneakerRepo is a mock implementation of repositories.SneakerRepository
type MockSneakerRepo struct {
	mock.Mock
}

func (m *MockSneakerRepo) GetAll() ([]models.Sneaker, error) {
	args := m.Called()
	return args.Get(0).([]models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepo) GetByID(id string) (*models.Sneaker, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepo) Create(sneaker *models.Sneaker) error {
	args := m.Called(sneaker)
	return args.Error(0)
}

func (m *MockSneakerRepo) Update(sneaker *models.Sneaker) error {
	args := m.Called(sneaker)
	return args.Error(0)
}

func (m *MockSneakerRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestSneakerService_GetAllSneakers(t *testing.T) {
	mockRepo := new(MockSneakerRepo)
	service := services.NewSneakerService(mockRepo)

	expected := []models.Sneaker{
		{ID: "1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10},
		{ID: "2", Name: "Stan Smith", Brand: "Adidas", Price: 90.0, Size: 43, Stock: 25},
	}

	mockRepo.On("GetAll").Return(expected, nil).Once()

	sneakers, err := service.GetAllSneakers()

	assert.NoError(t, err)
	assert.Len(t, sneakers, 2)
	assert.Equal(t, expected, sneakers)
	mockRepo.AssertExpectations(t)
}

func TestSneakerService_GetSneakerByID(t *testing.T) {
	mockRepo := new(MockSneakerRepo)
	service := services.NewSneakerService(mockRepo)

	expected := &models.Sneaker{ID: "1", Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10}

	mockRepo.On("GetByID", "1").Return(expected, nil).Once()
	sneaker, err := service.GetSneakerByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, sneaker)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("sneaker with ID 99 not found")).Once()
	sneaker, err = service.GetSneakerByID("99")
	assert.Error(t, err)
	assert.Nil(t, sneaker)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestSneakerService_CreateSneaker(t *testing.T) {
	mockRepo := new(MockSneakerRepo)
	service := services.NewSneakerService(mockRepo)

	newSneaker := &models.Sneaker{Name: "Old Skool", Brand: "Vans", Price: 65.0, Size: 41, Stock: 20}

	mockRepo.On("Create", newSneaker).Return(nil).Once()
	err := service.CreateSneaker(newSneaker)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Create", newSneaker).Return(fmt.Errorf("database error")).Once()
	err = service.CreateSneaker(newSneaker)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestSneakerService_UpdateSneaker(t *testing.T) {
	mockRepo := new(MockSneakerRepo)
	service := services.NewSneakerService(mockRepo)

	updated := &models.Sneaker{ID: "1", Name: "Air Max 90 SE", Brand: "Nike", Price: 130.0, Size: 42, Stock: 8}

	mockRepo.On("Update", updated).Return(nil).Once()
	err := service.UpdateSneaker(updated)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	missing := &models.Sneaker{ID: "99", Name: "NonExistent", Brand: "None", Price: 1.0, Size: 40, Stock: 1}
	mockRepo.On("Update", missing).Return(fmt.Errorf("sneaker with ID 99 not found for update")).Once()
	err = service.UpdateSneaker(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for update")
	mockRepo.AssertExpectations(t)
}

func TestSneakerService_DeleteSneaker(t *testing.T) {
	mockRepo := new(MockSneakerRepo)
	service := services.NewSneakerService(mockRepo)

	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteSneaker("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "99").Return(fmt.Errorf("sneaker with ID 99 not found for deletion")).Once()
	err = service.DeleteSneaker("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
	mockRepo.AssertExpectations(t)
}
