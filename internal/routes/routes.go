package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/config"
	"github.com/Timons172/Orders-backend-app/internal/handlers"
	"github.com/Timons172/Orders-backend-app/internal/middleware"
)

// CORSMiddleware lets browser clients send the Authorization header
// and replies to preflight requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// The browser sends an empty OPTIONS request first to check
		// permissions. Reply with "204 No Content".
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware())

	v1 := router.Group("/api/v1")
	{
		// --- Health Route (Public, unthrottled) ---
		v1.GET("/health", h.HealthCheck)

		// --- Auth Routes (Public, tight limit) ---
		user := v1.Group("/user")
		user.Use(middleware.RateLimitMiddleware(cfg.AuthRatePerMin, time.Minute))
		{
			user.POST("/register", h.Register)
			user.POST("/login", h.Login)
		}

		// --- Catalog Routes (Public) ---
		catalog := v1.Group("/")
		catalog.Use(middleware.RateLimitMiddleware(cfg.PublicRatePerMin, time.Minute))
		{
			catalog.GET("/products", h.GetProducts)
			catalog.GET("/product-info", h.GetProductInfo)
		}

		// --- Authenticated Routes ---
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware(h.Tokens))
		authed.Use(middleware.UserRateLimitMiddleware(cfg.UserRatePerMin, time.Minute))
		{
			// Cart
			authed.GET("/cart", h.GetCart)
			authed.POST("/cart", h.AddToCart)
			authed.DELETE("/cart", h.RemoveFromCart)

			// Orders
			authed.GET("/orders", h.GetMyOrders)
			authed.POST("/orders", h.ConfirmOrder)
			authed.GET("/orders/:id", h.GetOrderDetails)

			// Contacts
			authed.GET("/contacts", h.GetContacts)
			authed.POST("/contacts", h.CreateContact)
			authed.GET("/contacts/:id", h.GetContact)
			authed.PUT("/contacts/:id", h.UpdateContact)
			authed.DELETE("/contacts/:id", h.DeleteContact)
		}
	}

	return router
}
