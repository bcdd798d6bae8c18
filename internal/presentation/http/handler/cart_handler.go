package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/application/service"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/request"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests. Every route operates on the
// authenticated operator's own cart.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles fetching the operator's cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart := h.cartService.GetCart(*userID)
	response.OK(c, "Cart retrieved successfully", gin.H{"cart": cart})
}

// AddItem handles adding a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), *userID, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", gin.H{"cart": cart})
}

// UpdateItem handles setting a cart line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), *userID, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated successfully", gin.H{"cart": cart})
}

// RemoveItem handles removing a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), *userID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", gin.H{"cart": cart})
}

// ClearCart handles emptying the operator's cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.cartService.ClearCart(*userID)
	response.OK(c, "Cart cleared successfully", nil)
}
