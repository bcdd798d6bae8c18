package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model represents a vehicle model in the catalog
type Model struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"size:255;unique;not null" json:"name"`
	AccessoryCharge int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:ModelID" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (m Model) MarshalJSON() ([]byte, error) {
	type Alias Model
	return json.Marshal(&struct {
		Alias
		AccessoryCharge float64 `json:"accessory_charge"`
	}{
		Alias:           Alias(m),
		AccessoryCharge: float64(m.AccessoryCharge) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new model
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Model entity
func (Model) TableName() string {
	return "models"
}

// GetAccessoryChargeDecimal returns the accessory charge in rupees
func (m *Model) GetAccessoryChargeDecimal() float64 {
	return float64(m.AccessoryCharge) / 100
}

// SetAccessoryChargeFromDecimal sets the accessory charge from a rupee value
func (m *Model) SetAccessoryChargeFromDecimal(charge float64) {
	m.AccessoryCharge = int64(charge * 100)
}

// Battery represents a battery option in the catalog
type Battery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	Capacity  string         `gorm:"size:100" json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:BatteryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new battery
func (b *Battery) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Battery entity
func (Battery) TableName() string {
	return "batteries"
}

// Product represents a sellable vehicle: a model paired with a battery
type Product struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ModelID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"model_id"`
	BatteryID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"battery_id"`
	Range             int            `gorm:"not null" json:"range"` // km per charge
	Rate              int64          `gorm:"not null" json:"-"`     // Stored in paise, excluded from JSON
	AvailableQuantity int            `gorm:"default:0" json:"available_quantity"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Model   Model   `gorm:"foreignKey:ModelID" json:"model"`
	Battery Battery `gorm:"foreignKey:BatteryID" json:"battery"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Rate float64 `json:"rate"`
	}{
		Alias: Alias(p),
		Rate:  float64(p.Rate) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product entity
func (Product) TableName() string {
	return "products"
}

// GetRateDecimal returns the unit rate in rupees
func (p *Product) GetRateDecimal() float64 {
	return float64(p.Rate) / 100
}

// SetRateFromDecimal sets the unit rate from a rupee value
func (p *Product) SetRateFromDecimal(rate float64) {
	p.Rate = int64(rate * 100)
}
