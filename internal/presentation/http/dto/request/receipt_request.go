package request

// CustomerDetails carries the customer fields entered on the billing form
type CustomerDetails struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	Code    string `json:"code" binding:"max=10"`
	GSTIN   string `json:"gstin" binding:"max=20"`
}

// UnitDetailRequest carries the serial identifiers for one physical unit.
// All fields are optional; blanks are stored as entered.
type UnitDetailRequest struct {
	Color         string `json:"color" binding:"max=100"`
	HSNCode       string `json:"hsn_code" binding:"max=50"`
	BatteryNumber string `json:"battery_number" binding:"max=100"`
	ChargerNumber string `json:"charger_number" binding:"max=100"`
	ChassisNumber string `json:"chassis_number" binding:"max=100"`
}

// GenerateReceiptRequest represents a request to generate a receipt from the
// current cart
type GenerateReceiptRequest struct {
	Date            string              `json:"date"` // YYYY-MM-DD, defaults to today
	Customer        CustomerDetails     `json:"customer" binding:"required"`
	Accessories     bool                `json:"accessories"`
	PaymentType     string              `json:"payment_type" binding:"required,max=50"`
	SpecialDiscount float64             `json:"special_discount" binding:"gte=0,lte=100"`
	FinalAmount     *float64            `json:"final_amount" binding:"omitempty,gte=0"`
	UnitDetails     []UnitDetailRequest `json:"unit_details" binding:"required"`
}

// UpdateReceiptRequest represents a request to edit a persisted receipt.
// Monetary breakdown fields are not editable; only customer and payment
// details and the final amount are.
type UpdateReceiptRequest struct {
	Date        *string          `json:"date"` // YYYY-MM-DD
	Customer    *CustomerDetails `json:"customer"`
	PaymentType *string          `json:"payment_type" binding:"omitempty,max=50"`
	FinalAmount *float64         `json:"final_amount" binding:"omitempty,gte=0"`
}

// SearchReceiptsRequest represents a sparse receipt search. Empty fields are
// ignored; an all-empty request matches every receipt.
type SearchReceiptsRequest struct {
	FromDate      string `json:"from_date"` // YYYY-MM-DD inclusive
	ToDate        string `json:"to_date"`   // YYYY-MM-DD inclusive
	ReceiptNumber string `json:"receipt_number"`
	ChassisNo     string `json:"chassis_no"`
	Phone         string `json:"phone"`
	State         string `json:"state"`
	Code          string `json:"code"`
	GSTIN         string `json:"gstin"`
}
