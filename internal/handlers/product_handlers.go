package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/store"
)

//
// --- Catalog Handlers (Public) ---
//

// GetProducts lists catalog products, optionally narrowed to one
// category via ?category=<id>.
func (h *Handlers) GetProducts(c *gin.Context) {
	// 1. --- Parse the optional category filter ---
	var categoryID int64
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		categoryID = id
	}

	// 2. --- Fetch the products ---
	products, err := h.Store.Products(c, categoryID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductInfo searches listings. ?shop= and ?category= narrow by
// id; ?search= matches case-insensitively against both the listing
// name and the product name.
func (h *Handlers) GetProductInfo(c *gin.Context) {
	// 1. --- Build the filter from the query string ---
	var filter store.ListingFilter
	if raw := c.Query("shop"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
			return
		}
		filter.ShopID = id
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		filter.CategoryID = id
	}
	filter.Search = c.Query("search")

	// 2. --- Run the search ---
	results, err := h.Store.SearchListings(c, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
