// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/validate"
)

// UserStore persists users. Implemented by the repository; absent
// entities surface as repository sentinel errors.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithActiveCart(ctx context.Context, id string) (*model.User, *model.Cart, error)
	ListUsers(ctx context.Context, order validate.SortOrder, limit, offset int) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// ProductStore persists products.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, order validate.SortOrder, limit, offset int, ownerID string) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// CartStore persists carts and their product links.
type CartStore interface {
	CreateCart(ctx context.Context, cart *model.Cart) error
	GetCartByID(ctx context.Context, id string) (*model.Cart, error)
	UpdateCart(ctx context.Context, id string, productIDs []string, isActive *bool) (*model.Cart, error)
	DeleteCart(ctx context.Context, id string) error
}

// PasswordHasher is a one-way, salted credential hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
