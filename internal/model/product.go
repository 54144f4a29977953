package model

import "time"

// Product represents a sellable item owned by exactly one user.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	OwnerID     string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedBy reports whether the product belongs to the given user.
func (p *Product) OwnedBy(userID string) bool {
	return p.OwnerID == userID
}
