package billing

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUnitsOnePerPhysicalUnit(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 100000), 2))
	require.NoError(t, cart.Add(testProduct(uuid.New(), "City Glide", "LeadMax", 3500000, 50000), 1))

	details := []UnitDetail{
		{ChassisNumber: "CH-001", BatteryNumber: "BAT-001", ChargerNumber: "CHG-001", Color: "Red", HSNCode: "8711"},
		{ChassisNumber: "CH-002", BatteryNumber: "BAT-002", ChargerNumber: "CHG-002", Color: "Blue", HSNCode: "8711"},
		{ChassisNumber: "CH-003", BatteryNumber: "BAT-003", ChargerNumber: "CHG-003", Color: "White", HSNCode: "8711"},
	}

	units, err := ExpandUnits(cart.Items, details)
	require.NoError(t, err)
	require.Len(t, units, cart.UnitCount())

	// Detail i pairs with flattened unit i, line order preserved.
	assert.Equal(t, "CH-001", units[0].ChassisNumber)
	assert.Equal(t, "CH-002", units[1].ChassisNumber)
	assert.Equal(t, "CH-003", units[2].ChassisNumber)
	assert.Equal(t, "Ranger X1", units[0].ModelName)
	assert.Equal(t, "Ranger X1", units[1].ModelName)
	assert.Equal(t, "City Glide", units[2].ModelName)

	for _, unit := range units {
		assert.Equal(t, 1, unit.Quantity)
		assert.Equal(t, unit.Rate, unit.Amount)
	}
	assert.Equal(t, int64(5000000), units[0].Amount)
	assert.Equal(t, int64(3500000), units[2].Amount)
}

func TestExpandUnitsDetailCountMismatch(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0), 3))

	_, err := ExpandUnits(cart.Items, []UnitDetail{{}, {}})
	assert.ErrorIs(t, err, ErrUnitDetailMismatch)

	_, err = ExpandUnits(cart.Items, []UnitDetail{{}, {}, {}, {}})
	assert.ErrorIs(t, err, ErrUnitDetailMismatch)
}

func TestExpandUnitsBlankSerialsPassThrough(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.Add(testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 0), 1))

	units, err := ExpandUnits(cart.Items, []UnitDetail{{Color: "Black"}})
	require.NoError(t, err)
	require.Len(t, units, 1)

	// No auto-generation here: blank serials stay blank.
	assert.Empty(t, units[0].ChassisNumber)
	assert.Empty(t, units[0].BatteryNumber)
	assert.Empty(t, units[0].ChargerNumber)
	assert.Equal(t, "Black", units[0].Color)
}

func TestExpandUnitsSnapshotsCatalogFields(t *testing.T) {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, 100000)
	cart := &Cart{}
	require.NoError(t, cart.Add(product, 1))

	units, err := ExpandUnits(cart.Items, []UnitDetail{{}})
	require.NoError(t, err)

	unit := units[0]
	assert.Equal(t, product.ID, unit.ProductID)
	assert.Equal(t, product.Model.Name, unit.ModelName)
	assert.Equal(t, product.Model.AccessoryCharge, unit.AccessoryCharge)
	assert.Equal(t, product.Battery.Name, unit.BatteryName)
	assert.Equal(t, product.Battery.Capacity, unit.BatteryCapacity)
	assert.Equal(t, product.Range, unit.Range)
}

func TestNewReceiptNumberFormat(t *testing.T) {
	n := NewReceiptNumber()
	assert.True(t, strings.HasPrefix(n, "EV-"), n)
	assert.Len(t, strings.Split(n, "-"), 3)

	// Suffixed numbers must differ even within the same millisecond.
	assert.NotEqual(t, n, NewReceiptNumber())
}
