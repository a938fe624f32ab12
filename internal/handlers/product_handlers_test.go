package handlers

import (
	"github.com/Timons172/Orders-backend-app/internal/models"
)

func (s *HandlersSuite) TestHealthCheck() {
	w := s.do("GET", "/api/v1/health", "", nil)
	s.Equal(200, w.Code)

	var body map[string]string
	s.decode(w, &body)
	s.Equal("ok", body["status"])
}

func (s *HandlersSuite) TestGetProducts() {
	s.seedCatalog()

	w := s.do("GET", "/api/v1/products", "", nil)
	s.Equal(200, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Products []models.ProductView `json:"products"`
	}
	s.decode(w, &resp)
	s.Require().Len(resp.Products, 2)
	s.Equal("iPhone SE", resp.Products[0].Name)
	s.Equal("iphone-se", resp.Products[0].Slug)
	s.Equal("Smartphones", resp.Products[0].Category.Name)

	// Narrowed to the accessories category.
	filtered := s.do("GET", "/api/v1/products?category=2", "", nil)
	s.Equal(200, filtered.Code)
	s.decode(filtered, &resp)
	s.Require().Len(resp.Products, 1)
	s.Equal("USB-C cable", resp.Products[0].Name)

	bad := s.do("GET", "/api/v1/products?category=abc", "", nil)
	s.Equal(400, bad.Code)
	s.Equal("Invalid category ID", s.errorMessage(bad))
}

func (s *HandlersSuite) TestGetProductInfo() {
	s.seedCatalog()

	w := s.do("GET", "/api/v1/product-info", "", nil)
	s.Equal(200, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Results []models.ListingView `json:"results"`
	}
	s.decode(w, &resp)
	s.Require().Len(resp.Results, 2)
	s.Equal("iPhone SE", resp.Results[0].Name)
	s.Equal("Svyaznoy", resp.Results[0].Shop.Name)
	s.Equal(10, resp.Results[0].Quantity)
	s.Equal("100", resp.Results[0].Price.String())
	s.Require().Len(resp.Results[0].Parameters, 1)
	s.Equal("Color", resp.Results[0].Parameters[0].Name)

	search := s.do("GET", "/api/v1/product-info?search=usb", "", nil)
	s.Equal(200, search.Code)
	s.decode(search, &resp)
	s.Require().Len(resp.Results, 1)
	s.Equal("USB-C cable", resp.Results[0].Name)

	byCategory := s.do("GET", "/api/v1/product-info?category=1", "", nil)
	s.decode(byCategory, &resp)
	s.Require().Len(resp.Results, 1)
	s.Equal("iPhone SE", resp.Results[0].Name)

	empty := s.do("GET", "/api/v1/product-info?shop=1&search=nothing-here", "", nil)
	s.decode(empty, &resp)
	s.Empty(resp.Results)

	badShop := s.do("GET", "/api/v1/product-info?shop=abc", "", nil)
	s.Equal(400, badShop.Code)
	s.Equal("Invalid shop ID", s.errorMessage(badShop))
}
