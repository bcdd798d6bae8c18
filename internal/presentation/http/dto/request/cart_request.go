package request

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest represents a request to set a cart line's quantity
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// RemoveCartItemRequest represents a request to remove a cart line
type RemoveCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}
