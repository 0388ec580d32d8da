package catalog_test

import (
	"context"
	"testing"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _ := newProductService(t)

	c, err := svc.Create(ctx, " Books ")
	require.NoError(t, err)
	assert.Equal(t, "Books", c.Name)

	tests := map[string]struct {
		name     string
		wantKind apperr.Kind
		wantMsg  string
	}{
		"too short": {
			name:     "ab",
			wantKind: apperr.KindValidation,
			wantMsg:  "Invalid category name. It must be a string of at least 3 characters.",
		},
		"blank after trim": {
			name:     "    ",
			wantKind: apperr.KindValidation,
		},
		"duplicate": {
			name:     "Books",
			wantKind: apperr.KindConflict,
			wantMsg:  "Category already exists.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.name)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apperr.As(err).Message)
			}
		})
	}
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _ := newProductService(t)

	books, err := svc.Create(ctx, "Books")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Music")
	require.NoError(t, err)

	got, err := svc.Update(ctx, books.ID, "Novels")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategorySummary{Name: "Novels"}, got)

	// Renaming to its own name is allowed.
	_, err = svc.Update(ctx, books.ID, "Novels")
	require.NoError(t, err)

	_, err = svc.Update(ctx, books.ID, "Music")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Update(ctx, "missing", "Games")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Update(ctx, books.ID, "x")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()
	products, svc, _, _ := newProductService(t)

	inUse, err := svc.Create(ctx, "Garden")
	require.NoError(t, err)
	unused, err := svc.Create(ctx, "Kitchen")
	require.NoError(t, err)

	_, err = products.Create(ctx, catalog.NewProduct{Name: "Hose", Price: 12, CategoryID: strPtr(inUse.ID)})
	require.NoError(t, err)

	err = svc.Delete(ctx, inUse.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Get(ctx, inUse.ID)
	require.NoError(t, err, "category with products must survive")

	require.NoError(t, svc.Delete(ctx, unused.ID))

	err = svc.Delete(ctx, unused.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Could not find category for this id.", apperr.As(err).Message)
}

// staleCounts reports no products for any category, as a count taken
// before a concurrent product create would.
type staleCounts struct {
	*testutil.MemProducts
}

func (staleCounts) CountByCategory(context.Context, string) (int64, error) { return 0, nil }

func TestCategoryServiceDeleteRacingProductCreate(t *testing.T) {
	ctx := context.Background()
	products, cats, store, _ := newProductService(t)

	cat, err := cats.Create(ctx, "Garden")
	require.NoError(t, err)
	_, err = products.Create(ctx, catalog.NewProduct{Name: "Rake", Price: 9, CategoryID: strPtr(cat.ID)})
	require.NoError(t, err)

	svc := catalog.NewCategoryService(store.Categories(), staleCounts{store.Products()})
	err = svc.Delete(ctx, cat.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Cannot delete a category with associated products. Remove or reassign the products first.", apperr.As(err).Message)

	_, err = cats.Get(ctx, cat.ID)
	require.NoError(t, err)
}

func TestCategoryServiceListEmptyIsNotFound(t *testing.T) {
	_, svc, _, _ := newProductService(t)

	_, err := svc.List(context.Background())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
