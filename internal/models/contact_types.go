package models

// Contact types a user can attach to an order at confirmation.
const (
	ContactTypePhone   = "phone"
	ContactTypeAddress = "address"
)

// Contact is a delivery contact owned by a single user. Other users
// never see it and cannot confirm orders against it.
type Contact struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"-" db:"user_id"`
	Type   string `json:"type" db:"type"`
	Value  string `json:"value" db:"value"`
}
