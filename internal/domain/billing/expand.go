package billing

import (
	"errors"

	"github.com/voltify/evdealer-api/internal/domain/entity"
)

// ErrUnitDetailMismatch is returned when the number of per-unit detail
// entries does not equal the total unit count of the cart lines.
var ErrUnitDetailMismatch = errors.New("unit detail count must equal total cart quantity")

// UnitDetail carries the serial identifiers the operator enters for one
// physical unit. Blank fields pass through as empty strings; nothing is
// auto-generated at this layer.
type UnitDetail struct {
	Color         string `json:"color"`
	HSNCode       string `json:"hsn_code"`
	BatteryNumber string `json:"battery_number"`
	ChargerNumber string `json:"charger_number"`
	ChassisNumber string `json:"chassis_number"`
}

// ExpandUnits flattens cart lines into one receipt item per physical unit.
// A line of quantity N contributes N items in order, and detail entry i
// pairs with flattened unit i. Each unit is priced independently at the
// product's unit rate with quantity fixed at 1.
func ExpandUnits(items []LineItem, details []UnitDetail) ([]entity.ReceiptItem, error) {
	unitCount := 0
	for _, item := range items {
		unitCount += item.Quantity
	}
	if len(details) != unitCount {
		return nil, ErrUnitDetailMismatch
	}

	units := make([]entity.ReceiptItem, 0, unitCount)
	idx := 0
	for _, item := range items {
		for n := 0; n < item.Quantity; n++ {
			detail := details[idx]
			idx++

			units = append(units, entity.ReceiptItem{
				ProductID:       item.Product.ID,
				ModelName:       item.Product.Model.Name,
				AccessoryCharge: item.Product.Model.AccessoryCharge,
				BatteryName:     item.Product.Battery.Name,
				BatteryCapacity: item.Product.Battery.Capacity,
				Range:           item.Product.Range,
				Rate:            item.Product.Rate,
				Quantity:        1,
				Amount:          item.Product.Rate,
				Color:           detail.Color,
				HSNCode:         detail.HSNCode,
				BatteryNumber:   detail.BatteryNumber,
				ChargerNumber:   detail.ChargerNumber,
				ChassisNumber:   detail.ChassisNumber,
			})
		}
	}

	return units, nil
}
