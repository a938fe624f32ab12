package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Timons172/Orders-backend-app/internal/models"
)

func (s *HandlersSuite) TestContactLifecycle() {
	token := s.register("alice")

	// Create.
	w := s.do("POST", "/api/v1/contacts", token, gin.H{
		"type": "phone", "value": "+7 999 123-45-67"})
	s.Equal(201, w.Code, "body: %s", w.Body.String())

	var contact models.Contact
	s.decode(w, &contact)
	s.NotZero(contact.ID)
	s.Equal(models.ContactTypePhone, contact.Type)
	s.Equal("+7 999 123-45-67", contact.Value)

	// List.
	list := s.do("GET", "/api/v1/contacts", token, nil)
	s.Equal(200, list.Code)
	var contacts struct {
		Contacts []models.Contact `json:"contacts"`
	}
	s.decode(list, &contacts)
	s.Require().Len(contacts.Contacts, 1)
	s.Equal(contact.ID, contacts.Contacts[0].ID)

	// Read one.
	one := s.do("GET", fmt.Sprintf("/api/v1/contacts/%d", contact.ID), token, nil)
	s.Equal(200, one.Code)

	// Update.
	upd := s.do("PUT", fmt.Sprintf("/api/v1/contacts/%d", contact.ID), token, gin.H{
		"type": "address", "value": "Lenina 1, Moscow"})
	s.Equal(200, upd.Code)
	var updated models.Contact
	s.decode(upd, &updated)
	s.Equal(models.ContactTypeAddress, updated.Type)
	s.Equal("Lenina 1, Moscow", updated.Value)

	// Delete.
	del := s.do("DELETE", fmt.Sprintf("/api/v1/contacts/%d", contact.ID), token, nil)
	s.Equal(204, del.Code)
	s.Empty(del.Body.String())

	gone := s.do("GET", fmt.Sprintf("/api/v1/contacts/%d", contact.ID), token, nil)
	s.Equal(404, gone.Code)
	s.Equal("Contact not found", s.errorMessage(gone))
}

func (s *HandlersSuite) TestContactValidation() {
	token := s.register("alice")

	badType := s.do("POST", "/api/v1/contacts", token, gin.H{
		"type": "telegram", "value": "@alice"})
	s.Equal(400, badType.Code)

	noValue := s.do("POST", "/api/v1/contacts", token, gin.H{"type": "phone"})
	s.Equal(400, noValue.Code)

	badID := s.do("GET", "/api/v1/contacts/abc", token, nil)
	s.Equal(400, badID.Code)
	s.Equal("Invalid contact ID", s.errorMessage(badID))
}

func (s *HandlersSuite) TestContactsAreOwnerScoped() {
	alice := s.register("alice")
	bob := s.register("bob")
	contactID := s.createContact(alice, "phone", "+7 999 123-45-67")

	// Bob sees an empty list and 404s everywhere on Alice's contact.
	list := s.do("GET", "/api/v1/contacts", bob, nil)
	var contacts struct {
		Contacts []models.Contact `json:"contacts"`
	}
	s.decode(list, &contacts)
	s.Empty(contacts.Contacts)

	path := fmt.Sprintf("/api/v1/contacts/%d", contactID)

	get := s.do("GET", path, bob, nil)
	s.Equal(404, get.Code)

	put := s.do("PUT", path, bob, gin.H{"type": "phone", "value": "hijacked"})
	s.Equal(404, put.Code)

	del := s.do("DELETE", path, bob, nil)
	s.Equal(404, del.Code)

	// Alice still owns the untouched contact.
	mine := s.do("GET", path, alice, nil)
	s.Equal(200, mine.Code)
	var contact models.Contact
	s.decode(mine, &contact)
	s.Equal("+7 999 123-45-67", contact.Value)
}
