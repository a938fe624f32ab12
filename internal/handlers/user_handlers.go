package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

// --- User Registration ---

// We accept a dedicated input struct instead of models.User so the
// client cannot smuggle in an 'id' or a ready-made password hash.
type RegisterUserInput struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Password       string `json:"password" binding:"required,min=8"`
	PasswordRepeat string `json:"password_repeat" binding:"required"`
}

// Register creates a buyer account and immediately issues a token.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Password != input.PasswordRepeat {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	// 2. --- Create User Model ---
	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	// 3. --- Hash the Password ---
	if err := user.Password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 4. --- Save to Database ---
	if err := h.Store.CreateUser(c, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		h.respondError(c, err)
		return
	}

	// 5. --- Issue the token ---
	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		h.Logger.Error("generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// 6. --- Welcome email is best-effort and asynchronous ---
	h.Notify.UserRegistered(user.Email, user.FullName())

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// --- User Login ---

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials and issues a fresh token. Unknown
// usernames and wrong passwords answer identically.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Look up the user ---
	user, err := h.Store.UserByUsername(c, input.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		h.respondError(c, err)
		return
	}

	// 3. --- Check the password ---
	match, err := user.Password.Matches(input.Password)
	if err != nil {
		h.Logger.Error("compare password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !match {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	// 4. --- Issue the token ---
	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		h.Logger.Error("generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
