package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/jackc/pgx/v5"
)

// CartRepository stores cart headers in carts and their lines in cart_items.
// Save rewrites all lines of a cart in one transaction guarded by the
// version column.
type CartRepository struct {
	pool DBPool
}

func NewCartRepository(pool DBPool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) List(ctx context.Context) ([]cart.Cart, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, total_price, version, created_at, updated_at FROM carts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query carts: %w", err)
	}
	defer rows.Close()

	carts := []cart.Cart{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		c := cart.Cart{Products: []cart.LineItem{}}
		if err := rows.Scan(&c.ID, &c.TotalPrice, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		index[c.ID] = len(carts)
		ids = append(ids, c.ID)
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carts: %w", err)
	}
	if len(carts) == 0 {
		return carts, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT cart_id, product_id, quantity, total_item_price
		FROM cart_items
		WHERE cart_id = ANY($1)
		ORDER BY cart_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			cartID string
			item   cart.LineItem
		)
		if err := itemRows.Scan(&cartID, &item.ProductID, &item.Quantity, &item.TotalItemPrice); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		if i, ok := index[cartID]; ok {
			carts[i].Products = append(carts[i].Products, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return carts, nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*cart.Cart, error) {
	c := &cart.Cart{Products: []cart.LineItem{}}
	err := r.pool.QueryRow(ctx, `
		SELECT id, total_price, version, created_at, updated_at FROM carts WHERE id=$1
	`, id).Scan(&c.ID, &c.TotalPrice, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, quantity, total_item_price
		FROM cart_items
		WHERE cart_id=$1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item cart.LineItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.TotalItemPrice); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Products = append(c.Products, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id, total_price, version, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $4)
	`, c.ID, c.TotalPrice, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	c.Version = 1
	return nil
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE carts
		SET total_price=$3, updated_at=$4, version=version+1
		WHERE id=$1 AND version=$2
	`, c.ID, c.Version, c.TotalPrice, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id=$1)`, c.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check cart: %w", err)
		}
		if !exists {
			return cart.ErrNotFound
		}
		return cart.ErrVersionConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, c.ID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for i, item := range c.Products {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, position, quantity, total_item_price)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, item.ProductID, i, item.Quantity, item.TotalItemPrice); err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	c.Version++
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string, version int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id=$1 AND version=$2`, id, version)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id=$1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check cart: %w", err)
		}
		if !exists {
			return cart.ErrNotFound
		}
		return cart.ErrVersionConflict
	}
	return nil
}
