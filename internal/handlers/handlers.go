// Package handlers wires HTTP requests to the store and the order
// engine. Status codes and error bodies are part of the API contract;
// the mapping from domain errors lives in respondError.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/auth"
	"github.com/Timons172/Orders-backend-app/internal/notify"
	"github.com/Timons172/Orders-backend-app/internal/orders"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store  store.Store
	Engine *orders.Engine
	Tokens *auth.Manager
	Notify *notify.Dispatcher
	Logger *zap.Logger
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps domain errors onto HTTP responses. Handlers that
// want a more specific message check their own cases first.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not available in the specified shop"})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough items in stock"})
	case errors.Is(err, store.ErrNoCart), errors.Is(err, store.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, store.ErrInvalidContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact"})
	case errors.Is(err, orders.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exists"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
