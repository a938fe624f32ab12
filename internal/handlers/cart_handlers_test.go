package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/models"
)

func (s *HandlersSuite) TestCartRequiresAuth() {
	for _, path := range []string{"/api/v1/cart", "/api/v1/orders", "/api/v1/contacts"} {
		w := s.do("GET", path, "", nil)
		s.Equal(401, w.Code, "path: %s", path)
		s.Equal("Authorization header required", s.errorMessage(w))
	}
}

func (s *HandlersSuite) TestCartRejectsMalformedTokens() {
	// Wrong scheme.
	raw := s.doWithRawAuth("GET", "/api/v1/cart", "Basic abc123")
	s.Equal(401, raw.Code)
	s.Equal("Invalid token format (must be Bearer)", s.errorMessage(raw))

	// Bearer, but not a token we signed.
	garbage := s.do("GET", "/api/v1/cart", "not-a-jwt", nil)
	s.Equal(401, garbage.Code)
	s.Equal("Invalid or expired token", s.errorMessage(garbage))
}

func (s *HandlersSuite) TestGetCartCreatesEmptyCart() {
	token := s.register("alice")

	w := s.do("GET", "/api/v1/cart", token, nil)
	s.Equal(200, w.Code, "body: %s", w.Body.String())

	var cart models.OrderView
	s.decode(w, &cart)
	s.Equal(models.StatusNew, cart.Status)
	s.Empty(cart.Items)
	s.True(cart.TotalSum.IsZero())

	// Same cart on the second read.
	again := s.do("GET", "/api/v1/cart", token, nil)
	var cart2 models.OrderView
	s.decode(again, &cart2)
	s.Equal(cart.ID, cart2.ID)
}

func (s *HandlersSuite) TestAddToCartAndMerge() {
	s.seedCatalog()
	token := s.register("alice")

	w := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 2})
	s.Equal(200, w.Code, "body: %s", w.Body.String())

	var cart models.OrderView
	s.decode(w, &cart)
	s.Require().Len(cart.Items, 1)
	s.Equal(int64(1), cart.Items[0].Product.ID)
	s.Equal("iPhone SE", cart.Items[0].Product.Name)
	s.Equal("Svyaznoy", cart.Items[0].Shop.Name)
	s.Equal(2, cart.Items[0].Quantity)
	s.Equal("200", cart.TotalSum.String())

	// Adding the same pair again merges instead of duplicating.
	w = s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 3})
	s.Equal(200, w.Code)
	s.decode(w, &cart)
	s.Require().Len(cart.Items, 1)
	s.Equal(5, cart.Items[0].Quantity)
	s.Equal("500", cart.TotalSum.String())
}

func (s *HandlersSuite) TestAddToCartValidation() {
	s.seedCatalog()
	token := s.register("alice")

	unknown := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 99, "quantity": 1})
	s.Equal(400, unknown.Code)
	s.Equal("Product not available in the specified shop", s.errorMessage(unknown))

	tooMany := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 11})
	s.Equal(400, tooMany.Code)
	s.Equal("Not enough items in stock", s.errorMessage(tooMany))

	// Zero and negative quantities die in binding.
	zero := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 0})
	s.Equal(400, zero.Code)

	negative := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": -1})
	s.Equal(400, negative.Code)
}

func (s *HandlersSuite) TestRemoveFromCart() {
	s.seedCatalog()
	token := s.register("alice")

	w := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 2})
	var cart models.OrderView
	s.decode(w, &cart)
	s.Require().Len(cart.Items, 1)
	itemID := cart.Items[0].ID

	w = s.do("DELETE", "/api/v1/cart", token, gin.H{"item_id": itemID})
	s.Equal(200, w.Code, "body: %s", w.Body.String())
	s.decode(w, &cart)
	s.Empty(cart.Items)
	s.True(cart.TotalSum.IsZero())

	// Deleting it twice, or deleting someone else's line, is the same
	// 404.
	again := s.do("DELETE", "/api/v1/cart", token, gin.H{"item_id": itemID})
	s.Equal(404, again.Code)
	s.Equal("Item not found in cart", s.errorMessage(again))
}

func (s *HandlersSuite) TestRemoveFromCartIsOwnerScoped() {
	s.seedCatalog()
	alice := s.register("alice")
	bob := s.register("bob")

	w := s.do("POST", "/api/v1/cart", alice, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 1})
	var cart models.OrderView
	s.decode(w, &cart)
	itemID := cart.Items[0].ID

	foreign := s.do("DELETE", "/api/v1/cart", bob, gin.H{"item_id": itemID})
	s.Equal(404, foreign.Code)
	s.Equal("Item not found in cart", s.errorMessage(foreign))

	// Alice's cart is untouched.
	w = s.do("GET", "/api/v1/cart", alice, nil)
	s.decode(w, &cart)
	s.Len(cart.Items, 1)
}
