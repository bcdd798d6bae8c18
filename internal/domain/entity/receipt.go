package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt represents a generated GST tax invoice
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ReceiptNumber string    `gorm:"size:100;unique;not null" json:"receipt_number"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`

	// Customer details as entered by the operator
	CustomerName string `gorm:"size:255;not null" json:"customer_name"`
	Phone        string `gorm:"size:50" json:"phone"`
	Address      string `gorm:"type:text" json:"address"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	Code         string `gorm:"size:10" json:"code"` // state code on the invoice
	GSTIN        string `gorm:"size:20" json:"gstin"`

	Accessories     bool    `gorm:"default:false" json:"accessories"`
	PaymentType     string  `gorm:"size:50" json:"payment_type"`
	SpecialDiscount float64 `gorm:"default:0" json:"special_discount"` // percentage 0-100

	// Computed breakdown. Stored in paise, excluded from JSON (re-marshaled as decimals)
	Subtotal         int64 `gorm:"default:0" json:"-"`
	AccessoryCharges int64 `gorm:"default:0" json:"-"`
	Discount         int64 `gorm:"default:0" json:"-"`
	TaxableAmount    int64 `gorm:"default:0" json:"-"`
	CGST             int64 `gorm:"default:0" json:"-"`
	SGST             int64 `gorm:"default:0" json:"-"`
	TotalAmount      int64 `gorm:"default:0" json:"-"`

	// FinalAmount is operator-editable and stored alongside the computed
	// total; the two are never reconciled.
	FinalAmount int64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Subtotal         float64 `json:"subtotal"`
		AccessoryCharges float64 `json:"accessory_charges"`
		Discount         float64 `json:"discount"`
		TaxableAmount    float64 `json:"taxable_amount"`
		CGST             float64 `json:"cgst"`
		SGST             float64 `json:"sgst"`
		TotalAmount      float64 `json:"total_amount"`
		FinalAmount      float64 `json:"final_amount"`
	}{
		Alias:            Alias(r),
		Subtotal:         float64(r.Subtotal) / 100,
		AccessoryCharges: float64(r.AccessoryCharges) / 100,
		Discount:         float64(r.Discount) / 100,
		TaxableAmount:    float64(r.TaxableAmount) / 100,
		CGST:             float64(r.CGST) / 100,
		SGST:             float64(r.SGST) / 100,
		TotalAmount:      float64(r.TotalAmount) / 100,
		FinalAmount:      float64(r.FinalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt entity
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem represents one physical unit on a receipt. A cart line of
// quantity N expands into N receipt items, each carrying its own serial
// identifiers.
type ReceiptItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`

	// Catalog snapshot at sale time
	ModelName       string `gorm:"size:255;not null" json:"model_name"`
	AccessoryCharge int64  `gorm:"default:0" json:"-"` // Stored in paise
	BatteryName     string `gorm:"size:255;not null" json:"battery_name"`
	BatteryCapacity string `gorm:"size:100" json:"battery_capacity"`
	Range           int    `gorm:"default:0" json:"range"`
	Rate            int64  `gorm:"not null" json:"-"` // Stored in paise

	Quantity int   `gorm:"default:1" json:"quantity"` // always 1, one row per unit
	Amount   int64 `gorm:"not null" json:"-"`         // Stored in paise

	// Per-unit serial identifiers; blank when the operator left them empty
	Color         string `gorm:"size:100" json:"color"`
	HSNCode       string `gorm:"size:50" json:"hsn_code"`
	BatteryNumber string `gorm:"size:100" json:"battery_number"`
	ChargerNumber string `gorm:"size:100" json:"charger_number"`
	ChassisNumber string `gorm:"size:100" json:"chassis_number"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (ri ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		AccessoryCharge float64 `json:"accessory_charge"`
		Rate            float64 `json:"rate"`
		Amount          float64 `json:"amount"`
	}{
		Alias:           Alias(ri),
		AccessoryCharge: float64(ri.AccessoryCharge) / 100,
		Rate:            float64(ri.Rate) / 100,
		Amount:          float64(ri.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt item
func (ri *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem entity
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
