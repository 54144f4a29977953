package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/shopcart/internal/apperr"
	"github.com/shopcart/shopcart/internal/events"
	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/repository"
	"github.com/shopcart/shopcart/internal/validate"
)

// ProductService handles product lifecycle and ownership rules.
type ProductService struct {
	products ProductStore
	users    *UserService
	events   events.Sink
}

// NewProductService creates a new ProductService.
func NewProductService(products ProductStore, users *UserService, sink events.Sink) *ProductService {
	if sink == nil {
		sink = events.NewNoop()
	}
	return &ProductService{
		products: products,
		users:    users,
		events:   sink,
	}
}

// CreateProductInput defines input for creating a product.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       float64
	OwnerID     string
}

// Create persists a product tied to an existing owner. Owner lookup
// goes through the user service so absence surfaces the same way it
// does everywhere else.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if _, err := s.users.Get(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, "product_created",
		slog.String("product_id", product.ID),
		slog.String("user_id", product.OwnerID),
	)

	return product, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}
	return s.getProductByID(ctx, id)
}

// ListProductsInput defines raw query parameters for listing products.
type ListProductsInput struct {
	SortOrder string
	Limit     string
	Offset    string
	OwnerID   string
}

// List retrieves a page of products ordered by creation time. An
// empty OwnerID lists every owner's products.
func (s *ProductService) List(ctx context.Context, input ListProductsInput) ([]*model.Product, error) {
	order := validate.NormalizeSortOrder(input.SortOrder)
	limit := validate.NormalizeLimit(input.Limit)
	offset := validate.NormalizeOffset(input.Offset)

	return s.products.ListProducts(ctx, order, limit, offset, input.OwnerID)
}

// UpdateProductInput defines a partial product update. Ownership is
// not part of the input; reassignment attempts are stripped before the
// service is called.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// Update applies a partial update. Only the owner may update a
// product.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput, requesterID string) (*model.Product, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}

	product, err := s.getProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.OwnedBy(requesterID) {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "product_updated", slog.String("product_id", product.ID))

	return product, nil
}

// Remove deletes a product and returns the deleted record. Only the
// owner may delete.
func (s *ProductService) Remove(ctx context.Context, id, requesterID string) (*model.Product, error) {
	if err := validate.CheckID(id); err != nil {
		return nil, err
	}
	if err := validate.CheckID(requesterID); err != nil {
		return nil, err
	}

	product, err := s.getProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.OwnedBy(requesterID) {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "product_removed", slog.String("product_id", product.ID))

	return product, nil
}

// getProductByID loads a product, classifying absence as not found.
func (s *ProductService) getProductByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, err
	}
	return product, nil
}
