package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM categories ORDER BY`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("c1", "Books", now, now).
			AddRow("c2", "Music", now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Music", got[1].Name)
}

func TestCategoryRepository_GetByNameMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(`FROM categories WHERE name=\$1`).
		WithArgs("Toys").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "Toys")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCategoryRepository_UniqueName(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"}
	mock.ExpectExec(`INSERT INTO categories`).WillReturnError(dup)
	mock.ExpectExec(`UPDATE categories`).WillReturnError(dup)

	assert.ErrorIs(t, repo.Create(ctx, catalog.Category{ID: "c1", Name: "Books"}), catalog.ErrDuplicate)
	assert.ErrorIs(t, repo.Update(ctx, catalog.Category{ID: "c1", Name: "Books"}), catalog.ErrDuplicate)
}

func TestCategoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectExec(`DELETE FROM categories`).WithArgs("c1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM categories`).WithArgs("c1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), catalog.ErrNotFound)
}

func TestCategoryRepository_DeleteReferenced(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}
	mock.ExpectExec(`DELETE FROM categories`).WithArgs("c1").WillReturnError(fk)

	assert.ErrorIs(t, repo.Delete(context.Background(), "c1"), catalog.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
