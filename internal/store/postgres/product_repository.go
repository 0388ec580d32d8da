package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, price, brand, description, category_id, created_at, updated_at`

type ProductRepository struct {
	pool DBPool
}

func NewProductRepository(pool DBPool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE category_id=$1 ORDER BY created_at, id`, categoryID)
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Exists(ctx context.Context, key catalog.ProductKey) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE name=$1 AND brand=$2 AND description=$3
			  AND category_id IS NOT DISTINCT FROM $4
		)
	`, key.Name, key.Brand, key.Description, key.CategoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id=$1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, p.Price, p.Brand, p.Description, p.CategoryID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p catalog.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name=$2, price=$3, brand=$4, description=$5, category_id=$6, updated_at=$7
		WHERE id=$1
	`, p.ID, p.Name, p.Price, p.Brand, p.Description, p.CategoryID, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Brand, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
