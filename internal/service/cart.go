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

// CartService handles cart lifecycle. It composes user and product
// lookups: a cart requires an existing user without an active cart and
// at least one resolvable product.
type CartService struct {
	carts    CartStore
	users    UserStore
	products ProductStore
	events   events.Sink
}

// NewCartService creates a new CartService.
func NewCartService(carts CartStore, users UserStore, products ProductStore, sink events.Sink) *CartService {
	if sink == nil {
		sink = events.NewNoop()
	}
	return &CartService{
		carts:    carts,
		users:    users,
		products: products,
		events:   sink,
	}
}

// Create opens a new active cart for the user, linking every product
// ID that resolves to an existing product. Unknown IDs are silently
// dropped; an empty result after filtering is an error.
func (s *CartService) Create(ctx context.Context, productIDs []string, userID string) (*model.Cart, error) {
	if err := validate.CheckID(userID); err != nil {
		return nil, err
	}

	user, activeCart, err := s.users.GetUserWithActiveCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	if activeCart != nil {
		return nil, apperr.New(apperr.Conflict, "an active cart already exists for this user")
	}

	validIDs, err := s.resolveProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(validIDs) == 0 {
		return nil, apperr.New(apperr.BadRequest, "no valid products were provided")
	}

	cart := &model.Cart{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		ProductIDs: validIDs,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.carts.CreateCart(ctx, cart); err != nil {
		// The active-cart pre-check can race; the store's partial
		// unique index is authoritative.
		if errors.Is(err, repository.ErrActiveCartExists) {
			return nil, apperr.New(apperr.Conflict, "an active cart already exists for this user")
		}
		return nil, err
	}

	s.events.Emit(ctx, "cart_created",
		slog.String("cart_id", cart.ID),
		slog.String("user_id", cart.UserID),
		slog.Int("product_count", len(cart.ProductIDs)),
	)

	return cart, nil
}

// Get retrieves a cart. Only the owning user may read it.
func (s *CartService) Get(ctx context.Context, cartID, userID string) (*model.Cart, error) {
	if err := validate.CheckID(cartID); err != nil {
		return nil, err
	}
	if err := validate.CheckID(userID); err != nil {
		return nil, err
	}

	cart, err := s.getCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.OwnedBy(userID) {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	return cart, nil
}

// UpdateCartInput defines a partial cart update. Product links are
// appended, never replaced or removed.
type UpdateCartInput struct {
	ProductIDs []string
	IsActive   *bool
}

// Update appends resolved products to an active cart and optionally
// flips the active flag. Inactive carts are immutable.
func (s *CartService) Update(ctx context.Context, cartID string, input UpdateCartInput, userID string) (*model.Cart, error) {
	if err := validate.CheckID(cartID); err != nil {
		return nil, err
	}
	if err := validate.CheckID(userID); err != nil {
		return nil, err
	}

	cart, err := s.getCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.IsActive {
		return nil, apperr.New(apperr.BadRequest, "cart is not active")
	}

	if !cart.OwnedBy(userID) {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	validIDs, err := s.resolveProducts(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(validIDs) == 0 {
		return nil, apperr.New(apperr.BadRequest, "no valid products were provided")
	}

	updated, err := s.carts.UpdateCart(ctx, cartID, validIDs, input.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperr.New(apperr.NotFound, "cart not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "cart_updated",
		slog.String("cart_id", updated.ID),
		slog.Int("product_count", len(updated.ProductIDs)),
	)

	return updated, nil
}

// Remove deletes a cart and returns the deleted record. Only the
// owning user may delete it.
func (s *CartService) Remove(ctx context.Context, cartID, userID string) (*model.Cart, error) {
	if err := validate.CheckID(cartID); err != nil {
		return nil, err
	}
	if err := validate.CheckID(userID); err != nil {
		return nil, err
	}

	cart, err := s.getCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.OwnedBy(userID) {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperr.New(apperr.NotFound, "cart not found")
		}
		return nil, err
	}

	s.events.Emit(ctx, "cart_removed", slog.String("cart_id", cart.ID))

	return cart, nil
}

// resolveProducts filters the given IDs down to those that resolve to
// existing products, preserving input order. Unknown IDs are dropped
// without a per-item error; duplicates are kept and left to the
// store's link uniqueness.
func (s *CartService) resolveProducts(ctx context.Context, productIDs []string) ([]string, error) {
	var valid []string
	for _, id := range productIDs {
		_, err := s.products.GetProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		valid = append(valid, id)
	}
	return valid, nil
}

// getCartByID loads a cart, classifying absence as not found.
func (s *CartService) getCartByID(ctx context.Context, id string) (*model.Cart, error) {
	cart, err := s.carts.GetCartByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperr.New(apperr.NotFound, "cart not found")
		}
		return nil, err
	}
	return cart, nil
}
