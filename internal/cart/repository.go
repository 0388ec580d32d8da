package cart

import (
	"context"
	"errors"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrVersionConflict = errors.New("cart version conflict")
)

// Repository persists carts with their embedded line items.
//
// Save succeeds only when the stored version equals c.Version; it then bumps
// c.Version. Delete applies the same check against version. A mismatch returns
// ErrVersionConflict, a missing cart ErrNotFound.
type Repository interface {
	List(ctx context.Context) ([]Cart, error)
	Get(ctx context.Context, id string) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, id string, version int64) error
}

// ProductReader resolves a product at its current price.
type ProductReader interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

type EventsPublisher interface {
	PublishCartUpdated(ctx context.Context, c *Cart) error
	PublishCartRemoved(ctx context.Context, cartID string) error
}
