package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/models"
)

func (s *HandlersSuite) TestRegisterIssuesTokenAndUser() {
	w := s.do("POST", "/api/v1/user/register", "", gin.H{
		"username":        "alice",
		"email":           "alice@example.com",
		"first_name":      "Alice",
		"last_name":       "Ivanova",
		"password":        "secretpass123",
		"password_repeat": "secretpass123",
	})
	s.Equal(201, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.decode(w, &resp)

	s.NotEmpty(resp.Token)
	s.NotZero(resp.User.ID)
	s.Equal("alice", resp.User.Username)
	s.Equal("alice@example.com", resp.User.Email)

	// The token must belong to the new account.
	userID, err := s.tokens.Validate(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, userID)

	// Neither the password nor its hash may appear in the response.
	s.NotContains(w.Body.String(), "password")
	s.NotContains(w.Body.String(), "secretpass123")
}

func (s *HandlersSuite) TestRegisterValidation() {
	cases := []struct {
		name string
		body gin.H
	}{
		{"missing username", gin.H{
			"email": "a@example.com", "password": "secretpass123", "password_repeat": "secretpass123"}},
		{"bad email", gin.H{
			"username": "alice", "email": "not-an-email", "password": "secretpass123", "password_repeat": "secretpass123"}},
		{"short password", gin.H{
			"username": "alice", "email": "a@example.com", "password": "short", "password_repeat": "short"}},
		{"missing repeat", gin.H{
			"username": "alice", "email": "a@example.com", "password": "secretpass123"}},
	}
	for _, tc := range cases {
		w := s.do("POST", "/api/v1/user/register", "", tc.body)
		s.Equal(400, w.Code, "%s: body: %s", tc.name, w.Body.String())
	}
}

func (s *HandlersSuite) TestRegisterPasswordMismatch() {
	w := s.do("POST", "/api/v1/user/register", "", gin.H{
		"username":        "alice",
		"email":           "alice@example.com",
		"password":        "secretpass123",
		"password_repeat": "different-pass",
	})
	s.Equal(400, w.Code)
	s.Equal("Passwords do not match", s.errorMessage(w))
}

func (s *HandlersSuite) TestRegisterDuplicateUsername() {
	s.register("alice")

	w := s.do("POST", "/api/v1/user/register", "", gin.H{
		"username":        "alice",
		"email":           "other@example.com",
		"password":        "secretpass123",
		"password_repeat": "secretpass123",
	})
	s.Equal(400, w.Code)
	s.Equal("Username already taken", s.errorMessage(w))
}

func (s *HandlersSuite) TestLogin() {
	s.register("alice")

	w := s.do("POST", "/api/v1/user/login", "", gin.H{
		"username": "alice",
		"password": "secretpass123",
	})
	s.Equal(200, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.decode(w, &resp)
	s.NotEmpty(resp.Token)
	s.Equal("alice", resp.User.Username)

	userID, err := s.tokens.Validate(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, userID)
}

func (s *HandlersSuite) TestLoginRejectsBadCredentials() {
	s.register("alice")

	// A wrong password and an unknown username must be told apart by
	// neither status nor body.
	wrongPass := s.do("POST", "/api/v1/user/login", "", gin.H{
		"username": "alice", "password": "wrong-password"})
	s.Equal(400, wrongPass.Code)
	s.Equal("Invalid credentials", s.errorMessage(wrongPass))

	unknown := s.do("POST", "/api/v1/user/login", "", gin.H{
		"username": "nobody", "password": "wrong-password"})
	s.Equal(400, unknown.Code)
	s.Equal("Invalid credentials", s.errorMessage(unknown))

	s.Equal(wrongPass.Body.String(), unknown.Body.String())
}
