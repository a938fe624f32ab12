package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimiters hands out one token bucket per client key.
type rateLimiters struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	requests int
	window   time.Duration
}

func newRateLimiters(requests int, window time.Duration) *rateLimiters {
	return &rateLimiters{
		clients:  make(map[string]*rate.Limiter),
		requests: requests,
		window:   window,
	}
}

func (r *rateLimiters) allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, ok := r.clients[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(r.window/time.Duration(r.requests)), r.requests)
		r.clients[key] = limiter
	}
	return limiter.Allow()
}

// RateLimitMiddleware throttles by client IP.
func RateLimitMiddleware(requests int, window time.Duration) gin.HandlerFunc {
	limiters := newRateLimiters(requests, window)
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserRateLimitMiddleware throttles by authenticated user, falling
// back to the client IP. Mount it after AuthMiddleware.
func UserRateLimitMiddleware(requests int, window time.Duration) gin.HandlerFunc {
	limiters := newRateLimiters(requests, window)
	return func(c *gin.Context) {
		key := c.ClientIP()
		if raw, exists := c.Get("userID"); exists {
			if id, ok := raw.(int64); ok {
				key = "user:" + strconv.FormatInt(id, 10)
			}
		}
		if !limiters.allow(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
