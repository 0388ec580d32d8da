package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	pool DBPool
}

func NewCategoryRepository(pool DBPool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []catalog.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (catalog.Category, error) {
	return r.getBy(ctx, `id`, id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (catalog.Category, error) {
	return r.getBy(ctx, `name`, name)
}

func (r *CategoryRepository) getBy(ctx context.Context, column, value string) (catalog.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE `+column+`=$1`, value)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Category{}, catalog.ErrNotFound
		}
		return catalog.Category{}, fmt.Errorf("get category by %s: %w", column, err)
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c catalog.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c catalog.Category) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET name=$2, updated_at=$3 WHERE id=$1`, c.ID, c.Name, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
