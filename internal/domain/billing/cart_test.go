package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltify/evdealer-api/internal/domain/entity"
)

func testProduct(id uuid.UUID, model, battery string, rate int64, accessoryCharge int64) entity.Product {
	return entity.Product{
		ID:      id,
		Model:   entity.Model{ID: uuid.New(), Name: model, AccessoryCharge: accessoryCharge},
		Battery: entity.Battery{ID: uuid.New(), Name: battery, Capacity: "60V 30Ah"},
		Range:   120,
		Rate:    rate,
	}
}

func TestCartAddMergesLinesByProductID(t *testing.T) {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 100000)

	cart := &Cart{}
	require.NoError(t, cart.Add(product, 2))
	require.NoError(t, cart.Add(product, 3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(5*5000000), cart.Total)
}

func TestCartAddFallsBackToCompositeKey(t *testing.T) {
	// Unpersisted products (no ID) with the same model+battery names must
	// merge into one line.
	a := testProduct(uuid.Nil, "Ranger X1", "LithiumPro", 5000000, 0)
	b := testProduct(uuid.Nil, "Ranger X1", "LithiumPro", 5000000, 0)

	cart := &Cart{}
	require.NoError(t, cart.Add(a, 1))
	require.NoError(t, cart.Add(b, 4))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddKeepsDistinctLinesInInsertionOrder(t *testing.T) {
	first := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)
	second := testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 0)
	third := testProduct(uuid.New(), "Ranger X1", "LeadMax", 4800000, 0)

	cart := &Cart{}
	require.NoError(t, cart.Add(first, 1))
	require.NoError(t, cart.Add(second, 1))
	require.NoError(t, cart.Add(third, 1))

	require.Len(t, cart.Items, 3)
	assert.Equal(t, first.ID, cart.Items[0].Product.ID)
	assert.Equal(t, second.ID, cart.Items[1].Product.ID)
	assert.Equal(t, third.ID, cart.Items[2].Product.ID)
	assert.Equal(t, int64(5000000+3500000+4800000), cart.Total)
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)

	cart := &Cart{}
	assert.ErrorIs(t, cart.Add(product, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.Add(product, -2), ErrInvalidQuantity)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartUpdateQuantitySetsValueVerbatim(t *testing.T) {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)

	cart := &Cart{}
	require.NoError(t, cart.Add(product, 2))
	require.NoError(t, cart.UpdateQuantity(product, 7))

	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, int64(7*5000000), cart.Total)
}

func TestCartUpdateQuantityRejectsNonPositive(t *testing.T) {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)

	cart := &Cart{}
	require.NoError(t, cart.Add(product, 2))

	assert.ErrorIs(t, cart.UpdateQuantity(product, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.UpdateQuantity(product, -1), ErrInvalidQuantity)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartUpdateQuantityUnknownProduct(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0), 1))

	other := testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 0)
	assert.ErrorIs(t, cart.UpdateQuantity(other, 3), ErrLineNotFound)
}

func TestCartRemoveUsesSameIdentityRuleAsAdd(t *testing.T) {
	// Removal matches by persisted ID when available, so two products that
	// share names but have distinct IDs are separate lines and only the
	// targeted one goes away.
	a := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)
	b := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5200000, 0)

	cart := &Cart{}
	require.NoError(t, cart.Add(a, 1))
	require.NoError(t, cart.Add(b, 1))
	require.Len(t, cart.Items, 2)

	require.NoError(t, cart.Remove(a))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.ID, cart.Items[0].Product.ID)
	assert.Equal(t, int64(5200000), cart.Total)
}

func TestCartRemoveUnknownProduct(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0), 1))

	assert.ErrorIs(t, cart.Remove(testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 0)), ErrLineNotFound)
	assert.Len(t, cart.Items, 1)
}

func TestCartTotalHoldsAfterEveryMutation(t *testing.T) {
	a := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0)
	b := testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 0)

	cart := &Cart{}
	verify := func() {
		var want int64
		for _, item := range cart.Items {
			want += item.Product.Rate * int64(item.Quantity)
		}
		assert.Equal(t, want, cart.Total)
	}

	require.NoError(t, cart.Add(a, 2))
	verify()
	require.NoError(t, cart.Add(b, 1))
	verify()
	require.NoError(t, cart.UpdateQuantity(a, 5))
	verify()
	require.NoError(t, cart.Remove(b))
	verify()
	cart.Clear()
	verify()
	assert.Zero(t, cart.Total)
}

func TestCartUnitCount(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0), 2))
	require.NoError(t, cart.Add(testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 0), 3))

	assert.Equal(t, 5, cart.UnitCount())
}
