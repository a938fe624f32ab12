// Package store defines the persistence contract for the storefront.
// Two implementations exist: mysql for production and memory for tests.
package store

import (
	"context"
	"errors"

	"github.com/Timons172/Orders-backend-app/internal/models"
)

// Sentinel errors shared by every implementation. Handlers match them
// with errors.Is to pick response codes.
var (
	ErrNotFound          = errors.New("store: not found")
	ErrDuplicate         = errors.New("store: duplicate entry")
	ErrNotAvailable      = errors.New("store: product not available in shop")
	ErrInsufficientStock = errors.New("store: insufficient stock")
	ErrNoCart            = errors.New("store: no active cart")
	ErrEmptyCart         = errors.New("store: cart is empty")
	ErrInvalidContact    = errors.New("store: invalid contact")
	ErrIntegrity         = errors.New("store: listing missing for order line")
)

// ListingFilter narrows a product-info search. Zero values mean "no
// filter"; Search matches case-insensitively against both the listing
// name and the product name.
type ListingFilter struct {
	ShopID     int64
	CategoryID int64
	Search     string
}

// UserStore persists buyer accounts.
type UserStore interface {
	// CreateUser inserts a user and fills in its ID. Returns
	// ErrDuplicate when the username is already taken.
	CreateUser(ctx context.Context, u *models.User) error
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// CatalogStore persists shops, categories, products and listings.
type CatalogStore interface {
	// ImportCatalog applies one parsed price-list file atomically:
	// the shop, its categories, and every good are created or updated
	// as a single unit. Listings are keyed by (product, shop).
	ImportCatalog(ctx context.Context, snap *models.CatalogImport) (*models.ImportResult, error)

	Shops(ctx context.Context) ([]models.Shop, error)
	Products(ctx context.Context, categoryID int64) ([]models.ProductView, error)

	// Listing returns the (product, shop) offer. ErrNotFound when the
	// shop does not carry the product.
	Listing(ctx context.Context, productID, shopID int64) (*models.ProductListing, error)
	ListingsByShop(ctx context.Context, shopID int64) ([]models.ProductListing, error)
	SearchListings(ctx context.Context, f ListingFilter) ([]models.ListingView, error)
}

// ContactStore persists delivery contacts. Every operation that takes
// a userID is scoped to it: foreign rows behave as if absent.
type ContactStore interface {
	CreateContact(ctx context.Context, c *models.Contact) error
	ContactsByUser(ctx context.Context, userID int64) ([]models.Contact, error)
	ContactForUser(ctx context.Context, userID, contactID int64) (*models.Contact, error)
	UpdateContact(ctx context.Context, c *models.Contact) error
	DeleteContact(ctx context.Context, userID, contactID int64) error
}

// OrderStore persists carts and orders. Implementations must uphold
// two uniqueness rules: at most one "new" order per user, and at most
// one line per (order, product, shop).
type OrderStore interface {
	// GetOrCreateCart returns the user's single "new" order, creating
	// it atomically when absent. Concurrent calls for one user must
	// settle on the same row.
	GetOrCreateCart(ctx context.Context, userID int64) (*models.Order, error)

	// AddCartLine merges quantity into the (order, product, shop)
	// line, inserting it when absent.
	AddCartLine(ctx context.Context, orderID, productID, shopID int64, quantity int) error

	// DeleteCartLine removes a line from the caller's own cart.
	// ErrNotFound when the line is absent, foreign, or not on a "new"
	// order.
	DeleteCartLine(ctx context.Context, userID, lineID int64) error

	// ConfirmCart flips the user's cart to confirmed and binds the
	// contact, atomically and at most once. Preconditions are checked
	// in order and the first failure wins: ErrNoCart, ErrEmptyCart,
	// ErrInvalidContact.
	ConfirmCart(ctx context.Context, userID, contactID int64) (int64, error)

	// OrdersByUser lists the user's orders excluding the cart, newest
	// first.
	OrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)

	// OrderForUser returns one non-cart order scoped to the user.
	OrderForUser(ctx context.Context, userID, orderID int64) (*models.Order, error)

	// OrderLineViews returns the order's lines with product and shop
	// data inlined, in insertion order.
	OrderLineViews(ctx context.Context, orderID int64) ([]models.OrderLineView, error)
}

// Store is the full persistence surface the application wires up.
type Store interface {
	UserStore
	CatalogStore
	ContactStore
	OrderStore
}
