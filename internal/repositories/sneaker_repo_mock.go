package repositories

import (
	"fmt"
	"sync"

	"sneakershop/internal/models"

	"github.com/google/uuid"
)

// MockSneakerRepository is an in-memory implementation of SneakerRepository.
type MockSneakerRepository struct {
	sneakers map[string]models.Sneaker
	mu       sync.RWMutex
}

// NewMockSneakerRepository creates a new instance of MockSneakerRepository.
func NewMockSneakerRepository() *MockSneakerRepository {
	return &MockSneakerRepository{
		sneakers: make(map[string]models.Sneaker),
	}
}

// GetAll returns all sneakers.
func (r *MockSneakerRepository) GetAll() ([]models.Sneaker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sneakerList := make([]models.Sneaker, 0, len(r.sneakers))
	for _, s := range r.sneakers {
		sneakerList = append(sneakerList, s)
	}
	return sneakerList, nil
}

// GetByID returns a sneaker by its ID.
func (r *MockSneakerRepository) GetByID(id string) (*models.Sneaker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sneaker, ok := r.sneakers[id]
	if !ok {
		return nil, fmt.Errorf("sneaker with ID %s not found", id)
	}
	return &sneaker, nil
}

// Create adds a new sneaker.
func (r *MockSneakerRepository) Create(sneaker *models.Sneaker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sneaker.ID == "" {
		sneaker.ID = uuid.New().String()
	}
	r.sneakers[sneaker.ID] = *sneaker
	return nil
}

// Update modifies an existing sneaker.
func (r *MockSneakerRepository) Update(sneaker *models.Sneaker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sneakers[sneaker.ID]
	if !ok {
		return fmt.Errorf("sneaker with ID %s not found for update", sneaker.ID)
	}
	r.sneakers[sneaker.ID] = *sneaker
	return nil
}

// Delete removes a sneaker by its ID.
func (r *MockSneakerRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sneakers[id]
	if !ok {
		return fmt.Errorf("sneaker with ID %s not found for deletion", id)
	}
	delete(r.sneakers, id)
	return nil
}
