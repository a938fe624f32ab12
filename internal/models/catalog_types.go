package models

import "github.com/shopspring/decimal"

// Shop is a seller whose price lists get loaded by the importer.
type Shop struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	URL  *string `json:"url" db:"url"`
}

// Category groups products. A category can be carried by many shops.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// Product is the catalog entry itself. Prices and stock live on the
// per-shop listing, not here.
type Product struct {
	ID         int64   `json:"id" db:"id"`
	CategoryID int64   `json:"-" db:"category_id"`
	Name       string  `json:"name" db:"name"`
	Slug       string  `json:"slug" db:"slug"`
	Image      *string `json:"image,omitempty" db:"image"`
}

// ProductListing is one shop's offer for one product: the per-shop
// name, stock level and prices. At most one listing exists per
// (product, shop) pair.
type ProductListing struct {
	ID         int64           `json:"id" db:"id"`
	ProductID  int64           `json:"product" db:"product_id"`
	ShopID     int64           `json:"shop" db:"shop_id"`
	ExternalID *int64          `json:"-" db:"external_id"`
	Name       string          `json:"name" db:"name"`
	Quantity   int             `json:"quantity" db:"quantity"`
	Price      decimal.Decimal `json:"price" db:"price"`
	PriceRRC   decimal.Decimal `json:"price_rrc" db:"price_rrc"`
}

// ListingParameter is a free-form name/value attribute of a listing.
type ListingParameter struct {
	Name  string `json:"name" db:"name"`
	Value string `json:"value" db:"value"`
}

// ProductView is the read shape for catalog endpoints and order lines:
// the product with its category inlined.
type ProductView struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Image    *string  `json:"image,omitempty"`
	Category Category `json:"category"`
}

// ListingView is the read shape for the product-info endpoint.
type ListingView struct {
	ID         int64              `json:"id"`
	Product    ProductView        `json:"product"`
	Shop       Shop               `json:"shop"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	Price      Money              `json:"price"`
	PriceRRC   Money              `json:"price_rrc"`
	Parameters []ListingParameter `json:"parameters"`
}

// CatalogImport is one parsed price-list file, ready to be persisted.
// Goods reference categories by name; the importer has already resolved
// the file-local category ids.
type CatalogImport struct {
	ShopName   string
	ShopURL    string
	Categories []string
	Goods      []CatalogGood
}

// CatalogGood is one goods entry from a price-list file.
type CatalogGood struct {
	ExternalID int64
	Category   string
	Name       string
	Image      string
	Quantity   int
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Parameters []ListingParameter
}

// ImportResult reports what an import run touched.
type ImportResult struct {
	ShopID        int64
	Categories    int
	Products      int
	Listings      int
	ImageProducts []int64
}
