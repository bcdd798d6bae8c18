package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Amounts below are in paise (₹50,000 = 5000000).

func twoUnitCart(accessoryCharge int64) *Cart {
	product := testProduct(uuid.New(), "Ranger X1", "LithiumPro", 5000000, accessoryCharge)
	cart := &Cart{}
	if err := cart.Add(product, 2); err != nil {
		panic(err)
	}
	return cart
}

func TestCalculateWithoutAccessoriesOrDiscount(t *testing.T) {
	cart := twoUnitCart(0)

	b, err := Calculate(cart.Items, cart.Total, false, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(10000000), b.Subtotal)       // ₹100,000
	assert.Equal(t, int64(0), b.AccessoryCharges)
	assert.Equal(t, int64(0), b.Discount)
	assert.Equal(t, int64(10000000), b.TaxableAmount)
	assert.Equal(t, int64(900000), b.CGST)             // ₹9,000
	assert.Equal(t, int64(900000), b.SGST)
	assert.Equal(t, int64(11800000), b.TotalAmount)    // ₹118,000
}

func TestCalculateWithAccessories(t *testing.T) {
	cart := twoUnitCart(100000) // ₹1,000 accessory charge per unit

	b, err := Calculate(cart.Items, cart.Total, true, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(200000), b.AccessoryCharges)  // ₹2,000
	assert.Equal(t, int64(10200000), b.Subtotal)        // ₹102,000
	assert.Equal(t, int64(10200000), b.TaxableAmount)
	assert.Equal(t, int64(918000), b.CGST)              // ₹9,180
	assert.Equal(t, int64(918000), b.SGST)
	assert.Equal(t, int64(12036000), b.TotalAmount)     // ₹120,360
}

func TestCalculateWithDiscount(t *testing.T) {
	cart := twoUnitCart(0)

	b, err := Calculate(cart.Items, cart.Total, false, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1000000), b.Discount)         // ₹10,000
	assert.Equal(t, int64(9000000), b.TaxableAmount)    // ₹90,000
	assert.Equal(t, int64(810000), b.CGST)              // ₹8,100
	assert.Equal(t, int64(810000), b.SGST)
	assert.Equal(t, int64(10620000), b.TotalAmount)     // ₹106,200
}

func TestCalculateRejectsOutOfRangeDiscount(t *testing.T) {
	cart := twoUnitCart(0)

	_, err := Calculate(cart.Items, cart.Total, false, -1)
	assert.ErrorIs(t, err, ErrDiscountOutOfRange)

	_, err = Calculate(cart.Items, cart.Total, false, 100.5)
	assert.ErrorIs(t, err, ErrDiscountOutOfRange)

	_, err = Calculate(cart.Items, cart.Total, false, 100)
	assert.NoError(t, err)
}

func TestCalculateAccessoriesToggleChangesOnlyDerivedValues(t *testing.T) {
	cart := twoUnitCart(100000)
	rawTotal := cart.Total

	off, err := Calculate(cart.Items, cart.Total, false, 5)
	require.NoError(t, err)
	on, err := Calculate(cart.Items, cart.Total, true, 5)
	require.NoError(t, err)

	// The cart's raw sum is an input and never altered.
	assert.Equal(t, rawTotal, cart.Total)

	assert.Zero(t, off.AccessoryCharges)
	assert.Equal(t, int64(200000), on.AccessoryCharges)
	assert.Equal(t, off.Subtotal+on.AccessoryCharges, on.Subtotal)
}

func TestCGSTAlwaysEqualsSGST(t *testing.T) {
	cart := twoUnitCart(137700) // odd accessory charge to exercise remainders

	for _, pct := range []float64{0, 1, 2.5, 33, 99, 100} {
		b, err := Calculate(cart.Items, cart.Total, true, pct)
		require.NoError(t, err)
		assert.Equal(t, b.CGST, b.SGST, "discount %v", pct)
		assert.Equal(t, b.TaxableAmount*GSTHalfRatePercent/100, b.CGST, "discount %v", pct)
		assert.Equal(t, b.TaxableAmount+b.CGST+b.SGST, b.TotalAmount, "discount %v", pct)
	}
}

func TestRoundedTotal(t *testing.T) {
	assert.Equal(t, int64(11800000), Breakdown{TotalAmount: 11800000}.RoundedTotal())
	assert.Equal(t, int64(11800000), Breakdown{TotalAmount: 11800049}.RoundedTotal())
	assert.Equal(t, int64(11800100), Breakdown{TotalAmount: 11800050}.RoundedTotal())
}
