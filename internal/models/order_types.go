package models

import "time"

// Order lifecycle. A "new" order is the user's cart; confirmation
// moves it into the visible history.
const (
	StatusNew       = "new"
	StatusConfirmed = "confirmed"
	StatusAssembled = "assembled"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"
)

// Order is the model for the 'orders' table. ContactID is set at
// confirmation and stays empty while the order is still a cart.
type Order struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	ContactID *int64    `json:"-" db:"contact_id"`
	CreatedAt time.Time `json:"dt" db:"dt"`
}

// OrderLine is the model for the 'order_lines' table. An order holds
// at most one line per (product, shop) pair.
type OrderLine struct {
	ID        int64 `json:"id" db:"id"`
	OrderID   int64 `json:"-" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	ShopID    int64 `json:"shop_id" db:"shop_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// OrderView is the order as the API returns it. TotalSum is computed
// from current listing prices on every read, never stored.
type OrderView struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"dt"`
	Status    string          `json:"status"`
	Contact   *Contact        `json:"contact,omitempty"`
	Items     []OrderLineView `json:"items"`
	TotalSum  Money           `json:"total_sum"`
}

// OrderLineView is one order line with product and shop inlined for
// display.
type OrderLineView struct {
	ID       int64       `json:"id"`
	Product  ProductView `json:"product"`
	Shop     Shop        `json:"shop"`
	Quantity int         `json:"quantity"`
}
