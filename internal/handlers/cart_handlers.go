package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/store"
)

//
// --- Cart Handlers ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	ShopID    int64 `json:"shop_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// RemoveFromCartInput defines the JSON for removing a cart line.
type RemoveFromCartInput struct {
	ItemID int64 `json:"item_id" binding:"required"`
}

// GetCart returns the caller's cart, creating an empty one on first
// use. Repeated calls keep returning the same order.
func (h *Handlers) GetCart(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Fetch or create the cart ---
	cart, err := h.Engine.Cart(c, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddToCart puts quantity of a (product, shop) listing into the cart.
// Adding the same pair again merges into the existing line.
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Bind & Validate JSON ---
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Add the line; the engine checks listing and stock ---
	cart, err := h.Engine.AddLine(c, userID, input.ProductID, input.ShopID, input.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart deletes one line from the caller's cart. Lines of
// other users look absent, not forbidden.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Bind & Validate JSON ---
	var input RemoveFromCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Remove the line ---
	cart, err := h.Engine.RemoveLine(c, userID, input.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
