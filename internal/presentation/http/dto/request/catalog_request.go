package request

// CreateModelRequest represents a request to add a vehicle model
type CreateModelRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=255"`
	AccessoryCharge float64 `json:"accessory_charge" binding:"omitempty,gte=0"`
}

// UpdateModelRequest represents a request to update a vehicle model
type UpdateModelRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=255"`
	AccessoryCharge *float64 `json:"accessory_charge" binding:"omitempty,gte=0"`
}

// CreateBatteryRequest represents a request to add a battery option
type CreateBatteryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Capacity string `json:"capacity" binding:"max=100"`
}

// UpdateBatteryRequest represents a request to update a battery option
type UpdateBatteryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Capacity *string `json:"capacity" binding:"omitempty,max=100"`
}

// CreateProductRequest represents a request to add a model+battery pairing
type CreateProductRequest struct {
	ModelID           string  `json:"model_id" binding:"required,uuid"`
	BatteryID         string  `json:"battery_id" binding:"required,uuid"`
	Range             int     `json:"range" binding:"gte=0"`
	Rate              float64 `json:"rate" binding:"required,gt=0"`
	AvailableQuantity int     `json:"available_quantity" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Range             *int     `json:"range" binding:"omitempty,gte=0"`
	Rate              *float64 `json:"rate" binding:"omitempty,gt=0"`
	AvailableQuantity *int     `json:"available_quantity" binding:"omitempty,gte=0"`
}

// UpdateQuantityRequest represents a stock level update
type UpdateQuantityRequest struct {
	AvailableQuantity int `json:"available_quantity" binding:"gte=0"`
}

// ProductFilterRequest represents product listing filters
type ProductFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	ModelID   string `form:"model_id"`
	BatteryID string `form:"battery_id"`
	InStock   bool   `form:"in_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
