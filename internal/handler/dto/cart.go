package dto

import (
	"time"

	"github.com/shopcart/shopcart/internal/model"
)

// CreateCartRequest represents the request body for opening a cart.
type CreateCartRequest struct {
	Products []string `json:"products" validate:"required,min=1,max=20,dive,required,uuid4"`
}

// UpdateCartRequest represents a partial cart update. Products are
// appended to the existing membership, never removed.
type UpdateCartRequest struct {
	Products []string `json:"products,omitempty" validate:"omitempty,min=1,max=20,dive,required,uuid4"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// CartResponse represents a cart in API responses.
type CartResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductIDs []string  `json:"product_ids"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCartResponse converts a Cart model to a CartResponse DTO.
func ToCartResponse(cart *model.Cart) *CartResponse {
	return &CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		ProductIDs: cart.ProductIDs,
		IsActive:   cart.IsActive,
		CreatedAt:  cart.CreatedAt,
	}
}
