package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/validate"
)

// CreateProduct inserts a new product into the database.
func (r *Repository) CreateProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OwnerID,
		product.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProductByID retrieves a product by its ID.
func (r *Repository) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, description, price, user_id, created_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return product, nil
}

// ListProducts retrieves a page of products ordered by creation time.
// An empty ownerID means no owner filter and returns all products.
func (r *Repository) ListProducts(ctx context.Context, order validate.SortOrder, limit, offset int, ownerID string) ([]*model.Product, error) {
	query := `
		SELECT id, name, description, price, user_id, created_at
		FROM products
		ORDER BY created_at ` + sortKeyword(order) + `
		LIMIT $1 OFFSET $2
	`
	args := []any{limit, offset}

	if ownerID != "" {
		query = `
			SELECT id, name, description, price, user_id, created_at
			FROM products
			WHERE user_id = $1
			ORDER BY created_at ` + sortKeyword(order) + `
			LIMIT $2 OFFSET $3
		`
		args = []any{ownerID, limit, offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// UpdateProduct updates a product's mutable fields. Ownership is never
// reassigned here.
func (r *Repository) UpdateProduct(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteProduct deletes a product. Cart links referencing it are
// removed by the store's cascade rules.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// scanProduct scans a single row into a Product model.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.OwnerID,
		&product.CreatedAt,
	)
	return &product, err
}
