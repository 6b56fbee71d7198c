package services

import (
	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
)

// SneakerService handles business logic for the sneaker catalog.
type SneakerService struct {
	repo repositories.SneakerRepository
}

// NewSneakerService creates a new SneakerService.
func NewSneakerService(repo repositories.SneakerRepository) *SneakerService {
	return &SneakerService{
		repo: repo,
	}
}

// GetAllSneakers retrieves the full catalog.
func (s *SneakerService) GetAllSneakers() ([]models.Sneaker, error) {
	return s.repo.GetAll()
}

// GetSneakerByID retrieves a single sneaker by its ID.
func (s *SneakerService) GetSneakerByID(id string) (*models.Sneaker, error) {
	return s.repo.GetByID(id)
}

// CreateSneaker adds a new sneaker to the catalog.
func (s *SneakerService) CreateSneaker(sneaker *models.Sneaker) error {
	return s.repo.Create(sneaker)
}

// UpdateSneaker updates an existing sneaker.
func (s *SneakerService) UpdateSneaker(sneaker *models.Sneaker) error {
	return s.repo.Update(sneaker)
}

// DeleteSneaker removes a sneaker from the catalog.
func (s *SneakerService) DeleteSneaker(id string) error {
	return s.repo.Delete(id)
}
