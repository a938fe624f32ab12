package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/store"
)

//
// --- Order Handlers ---
//

// ConfirmOrderInput defines the JSON for confirming the cart.
type ConfirmOrderInput struct {
	ContactID int64 `json:"contact_id" binding:"required"`
}

// GetMyOrders lists the caller's order history, newest first. The
// cart itself is never part of the history.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Fetch the orders ---
	orders, err := h.Engine.History(c, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ConfirmOrder turns the cart into a confirmed order bound to one of
// the caller's contacts. The checks run in a fixed order: cart
// exists, cart has lines, contact is owned.
func (h *Handlers) ConfirmOrder(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Bind & Validate JSON ---
	var input ConfirmOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contact ID is required"})
		return
	}

	// 3. --- Confirm; notifications go out asynchronously ---
	order, err := h.Engine.Confirm(c, userID, input.ContactID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrderDetails returns one order from the caller's history.
// Foreign and unknown ids both answer 404.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Parse the order ID from the URL ---
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	// 3. --- Fetch the order ---
	order, err := h.Engine.Get(c, userID, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
