package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

//
// --- Contact Handlers ---
//

// ContactInput defines the JSON for creating or updating a contact.
type ContactInput struct {
	Type  string `json:"type" binding:"required,oneof=phone address"`
	Value string `json:"value" binding:"required"`
}

// GetContacts lists the caller's own contacts.
func (h *Handlers) GetContacts(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Fetch the contacts ---
	contacts, err := h.Store.ContactsByUser(c, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// CreateContact stores a new contact bound to the caller.
func (h *Handlers) CreateContact(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Bind & Validate JSON ---
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Save to Database ---
	contact := models.Contact{
		UserID: userID,
		Type:   input.Type,
		Value:  input.Value,
	}
	if err := h.Store.CreateContact(c, &contact); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContact returns one contact. Foreign contacts answer 404, never
// 403, so ids cannot be probed.
func (h *Handlers) GetContact(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Parse the contact ID from the URL ---
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	// 3. --- Fetch the contact ---
	contact, err := h.Store.ContactForUser(c, userID, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// UpdateContact replaces the type and value of one owned contact.
func (h *Handlers) UpdateContact(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Parse the contact ID from the URL ---
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	// 3. --- Bind & Validate JSON ---
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 4. --- Update, scoped to the caller ---
	contact := models.Contact{
		ID:     contactID,
		UserID: userID,
		Type:   input.Type,
		Value:  input.Value,
	}
	if err := h.Store.UpdateContact(c, &contact); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact removes one owned contact.
func (h *Handlers) DeleteContact(c *gin.Context) {
	// 1. --- Get user ID (from middleware) ---
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	// 2. --- Parse the contact ID from the URL ---
	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	// 3. --- Delete, scoped to the caller ---
	if err := h.Store.DeleteContact(c, userID, contactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
