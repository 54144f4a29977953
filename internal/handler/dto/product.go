package dto

import (
	"time"

	"github.com/shopcart/shopcart/internal/model"
)

// CreateProductRequest represents the request body for creating a
// product. UserID is the owning user.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50,alphanumunicode"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0,decimal2"`
	UserID      string  `json:"user_id" validate:"required,uuid4"`
}

// UpdateProductRequest represents a partial product update. UserID
// identifies the requester and is never persisted; ownership cannot be
// reassigned.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=50,alphanumunicode"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=5,max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0,decimal2"`
	UserID      string   `json:"user_id" validate:"required,uuid4"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductResponse converts a Product model to a ProductResponse DTO.
func ToProductResponse(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		UserID:      product.OwnerID,
		CreatedAt:   product.CreatedAt,
	}
}

// ToProductListResponse converts a slice of Product models.
func ToProductListResponse(products []*model.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, ToProductResponse(product))
	}
	return out
}
