package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/shopcart/shopcart/internal/model"
)

// activeCartConstraint is the partial unique index guaranteeing at most
// one active cart per user. The service-layer pre-check is only an
// optimization; this constraint is authoritative.
const activeCartConstraint = "carts_one_active_per_user"

// CreateCart inserts a new cart and its product links in one
// transaction. Duplicate product IDs collapse via the join table's
// primary key.
func (r *Repository) CreateCart(ctx context.Context, cart *model.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO carts (id, user_id, is_active, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = tx.Exec(ctx, query,
		cart.ID,
		cart.UserID,
		cart.IsActive,
		cart.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activeCartConstraint) {
			return ErrActiveCartExists
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}

	if err := linkProducts(ctx, tx, cart.ID, cart.ProductIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}

	return nil
}

// GetCartByID retrieves a cart with its linked product IDs.
func (r *Repository) GetCartByID(ctx context.Context, id string) (*model.Cart, error) {
	query := `
		SELECT c.id, c.user_id, c.is_active, c.created_at,
		       COALESCE(ARRAY_AGG(cp.product_id::text) FILTER (WHERE cp.product_id IS NOT NULL), '{}')
		FROM carts c
		LEFT JOIN cart_products cp ON cp.cart_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	cart, err := scanCart(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart by ID: %w", err)
	}

	return cart, nil
}

// UpdateCart appends product links to an existing cart and sets the
// active flag when provided. Links are never removed. Returns the
// updated cart.
func (r *Repository) UpdateCart(ctx context.Context, id string, productIDs []string, isActive *bool) (*model.Cart, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE carts
		SET is_active = COALESCE($2, is_active)
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrCartNotFound
	}

	if err := linkProducts(ctx, tx, id, productIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cart update: %w", err)
	}

	return r.GetCartByID(ctx, id)
}

// DeleteCart deletes a cart and, via cascade, its product links.
func (r *Repository) DeleteCart(ctx context.Context, id string) error {
	query := `DELETE FROM carts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCartNotFound
	}

	return nil
}

// linkProducts inserts cart-product links, ignoring ones that already
// exist.
func linkProducts(ctx context.Context, tx pgx.Tx, cartID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO cart_products (cart_id, product_id)
		SELECT $1, unnest($2::text[])::uuid
		ON CONFLICT DO NOTHING
	`

	if _, err := tx.Exec(ctx, query, cartID, pq.Array(productIDs)); err != nil {
		return fmt.Errorf("failed to link products: %w", err)
	}

	return nil
}

// scanCart scans a single row into a Cart model.
func scanCart(row pgx.Row) (*model.Cart, error) {
	var cart model.Cart
	err := row.Scan(
		&cart.ID,
		&cart.UserID,
		&cart.IsActive,
		&cart.CreatedAt,
		pq.Array(&cart.ProductIDs),
	)
	return &cart, err
}
