package services

import (
	"fmt"
	"strings"

	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
)

// CartService handles business logic for shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	sneakerRepo repositories.SneakerRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, sneakerRepo repositories.SneakerRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		sneakerRepo: sneakerRepo,
	}
}

// GetCart returns the user's cart, or an empty one if none exists yet.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts a sneaker into the user's cart, merging quantities when the
// sneaker is already present.
func (s *CartService) AddItem(userID, sneakerID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	sneaker, err := s.sneakerRepo.GetByID(sneakerID)
	if err != nil {
		return nil, fmt.Errorf("sneaker %s not found: %w", sneakerID, err)
	}
	if sneaker.Stock < quantity {
		return nil, fmt.Errorf("insufficient stock for sneaker %s (requested: %d, available: %d)", sneaker.Name, quantity, sneaker.Stock)
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SneakerID == sneakerID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{SneakerID: sneakerID, Quantity: quantity})
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem takes a sneaker out of the user's cart entirely.
func (s *CartService) RemoveItem(userID, sneakerID string) (*models.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SneakerID != sneakerID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// ClearCart empties the user's cart, typically after checkout.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteByUserID(userID)
}
