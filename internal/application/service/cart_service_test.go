package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
)

// stubProductRepo backs cart and receipt tests with an in-memory product map.
type stubProductRepo struct {
	products      map[uuid.UUID]*entity.Product
	failIDs       []uuid.UUID // IDs AtomicDecrementBatch reports as out of stock
	decrementHits int
}

func newStubProductRepo(products ...*entity.Product) *stubProductRepo {
	m := make(map[uuid.UUID]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (s *stubProductRepo) Create(ctx context.Context, product *entity.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		s.products[products[i].ID] = &products[i]
	}
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.products[id], nil
}

func (s *stubProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) GetByModelAndBattery(ctx context.Context, modelID, batteryID uuid.UUID) (*entity.Product, error) {
	for _, p := range s.products {
		if p.ModelID == modelID && p.BatteryID == batteryID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *entity.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubProductRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if p, ok := s.products[id]; ok {
		p.AvailableQuantity = quantity
	}
	return nil
}

func (s *stubProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	s.decrementHits++
	if len(s.failIDs) > 0 {
		return s.failIDs, nil
	}
	for id, qty := range decrements {
		if p, ok := s.products[id]; ok {
			p.AvailableQuantity -= qty
		}
	}
	return nil, nil
}

func (s *stubProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := s.products[id]; ok {
			p.AvailableQuantity += qty
		}
	}
	return nil
}

func stubProduct(rate int64, accessoryCharge int64, qty int) *entity.Product {
	modelID := uuid.New()
	batteryID := uuid.New()
	return &entity.Product{
		ID:                uuid.New(),
		ModelID:           modelID,
		BatteryID:         batteryID,
		Range:             120,
		Rate:              rate,
		AvailableQuantity: qty,
		Model:             entity.Model{ID: modelID, Name: "Ranger X1", AccessoryCharge: accessoryCharge},
		Battery:           entity.Battery{ID: batteryID, Name: "LithiumPro", Capacity: "60V 30Ah"},
	}
}

func TestCartServiceAddAndGet(t *testing.T) {
	product := stubProduct(5000000, 100000, 10)
	svc := NewCartService(newStubProductRepo(product))
	userID := uuid.New()

	cart, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(10000000), cart.Total)

	// The returned cart is a snapshot; mutating it must not affect the store
	cart.Items[0].Quantity = 99
	fresh := svc.GetCart(userID)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
}

func TestCartServiceUnknownProduct(t *testing.T) {
	svc := NewCartService(newStubProductRepo())

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestCartServiceIsolatedPerOperator(t *testing.T) {
	product := stubProduct(5000000, 0, 10)
	svc := NewCartService(newStubProductRepo(product))

	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.AddItem(context.Background(), alice, product.ID, 3)
	require.NoError(t, err)

	bobCart := svc.GetCart(bob)
	assert.Empty(t, bobCart.Items)

	svc.ClearCart(bob)
	aliceCart := svc.GetCart(alice)
	assert.Len(t, aliceCart.Items, 1)
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	product := stubProduct(5000000, 0, 10)
	svc := NewCartService(newStubProductRepo(product))
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	// Removing again reports a missing line
	_, err = svc.RemoveItem(context.Background(), userID, product.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCartServiceUpdateQuantityRejectsZero(t *testing.T) {
	product := stubProduct(5000000, 0, 10)
	svc := NewCartService(newStubProductRepo(product))
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(context.Background(), userID, product.ID, 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
