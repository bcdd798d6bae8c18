package billing

import (
	"errors"
	"math"
)

// GSTHalfRatePercent is the CGST and SGST rate. The combined levy is twice
// this value (9% + 9% = 18%). Not configurable.
const GSTHalfRatePercent = 9

// ErrDiscountOutOfRange is returned when the special discount percentage is
// outside [0, 100]. The calculator rejects out-of-range input rather than
// silently clamping it.
var ErrDiscountOutOfRange = errors.New("special discount must be between 0 and 100 percent")

// Breakdown is the itemized monetary breakdown of an invoice. All values in paise.
type Breakdown struct {
	Subtotal         int64 `json:"subtotal"`
	AccessoryCharges int64 `json:"accessory_charges"`
	Discount         int64 `json:"discount"`
	TaxableAmount    int64 `json:"taxable_amount"`
	CGST             int64 `json:"cgst"`
	SGST             int64 `json:"sgst"`
	TotalAmount      int64 `json:"total_amount"`
}

// Calculate turns a cart snapshot plus the accessories flag and a discount
// percentage into a full invoice breakdown:
//
//	accessoryCharges = accessories ? Σ(model.accessoryCharge × qty) : 0
//	subtotal         = total + accessoryCharges
//	discount         = subtotal × discountPct / 100
//	taxableAmount    = subtotal − discount
//	cgst = sgst      = taxableAmount × 9%
//	totalAmount      = taxableAmount + cgst + sgst
//
// total is the cart's raw sum in paise; the calculation never alters it.
func Calculate(items []LineItem, total int64, accessoriesEnabled bool, discountPct float64) (Breakdown, error) {
	if discountPct < 0 || discountPct > 100 {
		return Breakdown{}, ErrDiscountOutOfRange
	}

	var accessoryCharges int64
	if accessoriesEnabled {
		for _, item := range items {
			accessoryCharges += item.Product.Model.AccessoryCharge * int64(item.Quantity)
		}
	}

	subtotal := total + accessoryCharges
	discount := int64(math.Round(float64(subtotal) * discountPct / 100))
	taxableAmount := subtotal - discount
	cgst := taxableAmount * GSTHalfRatePercent / 100
	sgst := cgst
	totalAmount := taxableAmount + cgst + sgst

	return Breakdown{
		Subtotal:         subtotal,
		AccessoryCharges: accessoryCharges,
		Discount:         discount,
		TaxableAmount:    taxableAmount,
		CGST:             cgst,
		SGST:             sgst,
		TotalAmount:      totalAmount,
	}, nil
}

// RoundedTotal returns the total amount rounded to the nearest whole rupee,
// in paise. It is the default for the operator-editable final amount.
func (b Breakdown) RoundedTotal() int64 {
	return int64(math.Round(float64(b.TotalAmount)/100)) * 100
}
