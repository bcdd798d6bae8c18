package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/billing"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
)

// CartService manages per-operator order carts. Carts live in memory only:
// they are working state for composing a receipt, not durable records, and
// are discarded on restart or after a receipt is generated from them.
type CartService struct {
	productRepo repository.ProductRepository

	mu    sync.RWMutex
	carts map[uuid.UUID]*billing.Cart
}

// NewCartService creates a new cart service
func NewCartService(productRepo repository.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
		carts:       make(map[uuid.UUID]*billing.Cart),
	}
}

// GetCart returns a snapshot of the operator's cart
func (s *CartService) GetCart(userID uuid.UUID) *billing.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return &billing.Cart{Items: []billing.LineItem{}}
	}
	return snapshot(cart)
}

// AddItem resolves the product and merges it into the operator's cart
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*billing.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		cart = &billing.Cart{}
		s.carts[userID] = cart
	}

	if err := cart.Add(*product, quantity); err != nil {
		return nil, cartError(err)
	}
	return snapshot(cart), nil
}

// UpdateItemQuantity sets the quantity on the matching cart line
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*billing.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	if err := cart.UpdateQuantity(*product, quantity); err != nil {
		return nil, cartError(err)
	}
	return snapshot(cart), nil
}

// RemoveItem removes the matching line from the operator's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*billing.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart line")
	}

	if err := cart.Remove(*product); err != nil {
		return nil, cartError(err)
	}
	return snapshot(cart), nil
}

// ClearCart empties the operator's cart
func (s *CartService) ClearCart(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// takeCart removes and returns the operator's cart under the lock. Used by
// receipt generation so the cart is consumed exactly once.
func (s *CartService) takeCart(userID uuid.UUID) (*billing.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok || len(cart.Items) == 0 {
		return nil, false
	}
	delete(s.carts, userID)
	return cart, true
}

// restoreCart puts a consumed cart back, merging with anything the operator
// added in the meantime. Used when receipt generation fails.
func (s *CartService) restoreCart(userID uuid.UUID, cart *billing.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.carts[userID]
	if !ok {
		s.carts[userID] = cart
		return
	}
	for _, item := range cart.Items {
		_ = current.Add(item.Product, item.Quantity)
	}
}

func snapshot(cart *billing.Cart) *billing.Cart {
	items := make([]billing.LineItem, len(cart.Items))
	copy(items, cart.Items)
	return &billing.Cart{Items: items, Total: cart.Total}
}

func cartError(err error) error {
	switch {
	case errors.Is(err, billing.ErrInvalidQuantity):
		return apperror.NewBadRequestError(err.Error())
	case errors.Is(err, billing.ErrLineNotFound):
		return apperror.NewNotFoundError("Cart line")
	default:
		return err
	}
}
