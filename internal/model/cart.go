package model

import "time"

// Cart represents a shopping cart linking a user to a set of products.
// A user has at most one active cart at any time; inactive carts are
// immutable.
type Cart struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductIDs []string  `json:"product_ids"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnedBy reports whether the cart belongs to the given user.
func (c *Cart) OwnedBy(userID string) bool {
	return c.UserID == userID
}
