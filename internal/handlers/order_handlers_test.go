package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/models"
)

func (s *HandlersSuite) TestConfirmOrderFlow() {
	s.seedCatalog()
	token := s.register("alice")
	contactID := s.createContact(token, "address", "Lenina 1, Moscow")

	s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 1, "shop_id": 1, "quantity": 2})
	s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 2, "shop_id": 1, "quantity": 1})

	w := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Equal(201, w.Code, "body: %s", w.Body.String())

	var order models.OrderView
	s.decode(w, &order)
	s.Equal(models.StatusConfirmed, order.Status)
	s.Require().NotNil(order.Contact)
	s.Equal(contactID, order.Contact.ID)
	s.Len(order.Items, 2)
	// 2 x 100.00 + 1 x 50.00
	s.Equal("250", order.TotalSum.String())

	// The confirmed order shows up in the history.
	list := s.do("GET", "/api/v1/orders", token, nil)
	s.Equal(200, list.Code)
	var history struct {
		Orders []models.OrderView `json:"orders"`
	}
	s.decode(list, &history)
	s.Require().Len(history.Orders, 1)
	s.Equal(order.ID, history.Orders[0].ID)

	// And is readable by id.
	one := s.do("GET", fmt.Sprintf("/api/v1/orders/%d", order.ID), token, nil)
	s.Equal(200, one.Code)
	var got models.OrderView
	s.decode(one, &got)
	s.Equal(order.ID, got.ID)
	s.Equal("250", got.TotalSum.String())

	// The cart slot is free again.
	cartResp := s.do("GET", "/api/v1/cart", token, nil)
	var cart models.OrderView
	s.decode(cartResp, &cart)
	s.NotEqual(order.ID, cart.ID)
	s.Empty(cart.Items)
}

func (s *HandlersSuite) TestConfirmOrderValidation() {
	s.seedCatalog()
	token := s.register("alice")
	contactID := s.createContact(token, "phone", "+7 999 123-45-67")

	// Body without contact_id.
	noContact := s.do("POST", "/api/v1/orders", token, gin.H{})
	s.Equal(400, noContact.Code)
	s.Equal("Contact ID is required", s.errorMessage(noContact))

	// No cart yet.
	noCart := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Equal(400, noCart.Code)
	s.Equal("Cart is empty", s.errorMessage(noCart))

	// Cart exists but has no lines.
	s.do("GET", "/api/v1/cart", token, nil)
	empty := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Equal(400, empty.Code)
	s.Equal("Cart is empty", s.errorMessage(empty))

	// Lines exist but the contact belongs to somebody else.
	bob := s.register("bob")
	bobContact := s.createContact(bob, "phone", "+7 111 222-33-44")

	s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 1, "shop_id": 1, "quantity": 1})
	foreign := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": bobContact})
	s.Equal(400, foreign.Code)
	s.Equal("Invalid contact", s.errorMessage(foreign))
}

func (s *HandlersSuite) TestConfirmTwiceNeedsANewCart() {
	s.seedCatalog()
	token := s.register("alice")
	contactID := s.createContact(token, "address", "Lenina 1")

	s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 1, "shop_id": 1, "quantity": 1})
	first := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Equal(201, first.Code)

	second := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Equal(400, second.Code)
	s.Equal("Cart is empty", s.errorMessage(second))
}

func (s *HandlersSuite) TestOrderHistoryNewestFirst() {
	s.seedCatalog()
	token := s.register("alice")
	contactID := s.createContact(token, "address", "Lenina 1")

	var ids []int64
	for i := 0; i < 2; i++ {
		s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 1, "shop_id": 1, "quantity": 1})
		w := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
		s.Require().Equal(201, w.Code)
		var order models.OrderView
		s.decode(w, &order)
		ids = append(ids, order.ID)
	}

	// A live cart must not leak into the history.
	s.do("POST", "/api/v1/cart", token, gin.H{"product_id": 2, "shop_id": 1, "quantity": 1})

	list := s.do("GET", "/api/v1/orders", token, nil)
	var history struct {
		Orders []models.OrderView `json:"orders"`
	}
	s.decode(list, &history)
	s.Require().Len(history.Orders, 2)
	s.Equal(ids[1], history.Orders[0].ID)
	s.Equal(ids[0], history.Orders[1].ID)
}

// TestPurchaseScenario walks the whole buyer journey through the API.
func (s *HandlersSuite) TestPurchaseScenario() {
	s.seedCatalog()
	s.register("alice")

	// Fresh token via login rather than the registration response.
	login := s.do("POST", "/api/v1/user/login", "", gin.H{
		"username": "alice", "password": "secretpass123"})
	s.Require().Equal(200, login.Code)
	var session struct {
		Token string `json:"token"`
	}
	s.decode(login, &session)
	token := session.Token

	w := s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": 1, "shop_id": 1, "quantity": 2})
	s.Require().Equal(200, w.Code)

	var cart models.OrderView
	s.decode(w, &cart)
	s.Equal("200", cart.TotalSum.String())

	contactID := s.createContact(token, "address", "Lenina 1, Moscow")
	confirm := s.do("POST", "/api/v1/orders", token, gin.H{"contact_id": contactID})
	s.Require().Equal(201, confirm.Code, "body: %s", confirm.Body.String())

	var order models.OrderView
	s.decode(confirm, &order)
	s.Equal(models.StatusConfirmed, order.Status)
	s.Len(order.Items, 1)
	s.Equal("200", order.TotalSum.String())
}

func (s *HandlersSuite) TestOrderDetailsScopedToOwner() {
	s.seedCatalog()
	alice := s.register("alice")
	bob := s.register("bob")
	contactID := s.createContact(alice, "address", "Lenina 1")

	s.do("POST", "/api/v1/cart", alice, gin.H{"product_id": 1, "shop_id": 1, "quantity": 1})
	w := s.do("POST", "/api/v1/orders", alice, gin.H{"contact_id": contactID})
	var order models.OrderView
	s.decode(w, &order)

	foreign := s.do("GET", fmt.Sprintf("/api/v1/orders/%d", order.ID), bob, nil)
	s.Equal(404, foreign.Code)
	s.Equal("Order not found", s.errorMessage(foreign))

	bad := s.do("GET", "/api/v1/orders/not-a-number", alice, nil)
	s.Equal(400, bad.Code)
	s.Equal("Invalid order ID", s.errorMessage(bad))

	missing := s.do("GET", "/api/v1/orders/99999", alice, nil)
	s.Equal(404, missing.Code)
}
