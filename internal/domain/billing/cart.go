// Package billing holds the order aggregation and invoice calculation core:
// the in-memory cart, the GST breakdown calculator and the expansion of cart
// lines into per-unit receipt items. Everything here is synchronous and free
// of I/O so it can be tested exhaustively.
package billing

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
)

var (
	// ErrInvalidQuantity is returned when a cart mutation is attempted with
	// a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrLineNotFound is returned when an update or removal targets a
	// product that has no line in the cart.
	ErrLineNotFound = errors.New("no cart line matches the given product")
)

// LineItem is one cart entry: a product and an aggregate quantity.
type LineItem struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart is an ordered collection of line items with a derived total in paise.
// The total is recomputed inside every mutating method before it returns,
// so callers never observe a stale value.
type Cart struct {
	Items []LineItem `json:"items"`
	Total int64      `json:"-"` // paise; emitted as rupees by MarshalJSON
}

// MarshalJSON emits the derived total in rupees, matching the decimal
// representation the catalog entities use.
func (c Cart) MarshalJSON() ([]byte, error) {
	type Alias Cart
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(c),
		Total: float64(c.Total) / 100,
	})
}

// SameProduct reports whether two products are the same cart identity.
// When both carry a persisted ID the IDs decide; otherwise the
// (model name, battery name) pair does. This single rule is used by Add,
// UpdateQuantity and Remove alike.
func SameProduct(a, b entity.Product) bool {
	if a.ID != uuid.Nil && b.ID != uuid.Nil {
		return a.ID == b.ID
	}
	return a.Model.Name == b.Model.Name && a.Battery.Name == b.Battery.Name
}

// Add merges the quantity into an existing line for the same product, or
// appends a new line at the end. Insertion order is preserved.
func (c *Cart) Add(product entity.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if SameProduct(c.Items[i].Product, product) {
			c.Items[i].Quantity += quantity
			c.recompute()
			return nil
		}
	}

	c.Items = append(c.Items, LineItem{Product: product, Quantity: quantity})
	c.recompute()
	return nil
}

// UpdateQuantity sets the matched line's quantity to the given value.
func (c *Cart) UpdateQuantity(product entity.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if SameProduct(c.Items[i].Product, product) {
			c.Items[i].Quantity = quantity
			c.recompute()
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove deletes every line matching the product.
func (c *Cart) Remove(product entity.Product) error {
	kept := c.Items[:0]
	removed := false
	for _, item := range c.Items {
		if SameProduct(item.Product, product) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return ErrLineNotFound
	}
	c.Items = kept
	c.recompute()
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.Total = 0
}

// UnitCount returns the total number of physical units across all lines.
func (c *Cart) UnitCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// recompute rebuilds the derived total as Σ(rate × quantity).
func (c *Cart) recompute() {
	var total int64
	for _, item := range c.Items {
		total += item.Product.Rate * int64(item.Quantity)
	}
	c.Total = total
}
