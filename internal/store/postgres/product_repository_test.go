package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "name", "price", "brand", "description", "category_id", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestProductRepository_Get(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewProductRepository(mock)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cat := "c1"
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id=\$1`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("p1", "Kettle", 24.5, "Brew", "1.7L", &cat, now, now))

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Kettle", p.Name)
	assert.Equal(t, 24.5, p.Price)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, "c1", *p.CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductRepository_ListEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM products ORDER BY`).
		WillReturnRows(pgxmock.NewRows(productCols))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_Exists(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	key := catalog.ProductKey{Name: "Kettle", Brand: "Brew", Description: "1.7L"}
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Kettle", "Brew", "1.7L", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProductRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), catalog.Product{ID: "p1"})
	assert.ErrorIs(t, err, catalog.ErrDuplicate)
}

func TestProductRepository_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(`UPDATE products`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM products WHERE id=\$1`).
		WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Update(ctx, catalog.Product{ID: "p1"}), catalog.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), catalog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	boom := errors.New("connection refused")
	mock.ExpectQuery(`SELECT count\(\*\) FROM products`).WillReturnError(boom)

	_, err := repo.CountByCategory(context.Background(), "c1")
	assert.ErrorIs(t, err, boom)
}
