package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
	// ErrInUse is returned when a category delete is refused because
	// products still reference it.
	ErrInUse = errors.New("still referenced")
)

// ProductRepository is implemented by the Postgres and Mongo stores.
// Get returns ErrNotFound when the id does not resolve.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Exists(ctx context.Context, key ProductKey) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository returns ErrNotFound for unknown ids or names and
// ErrDuplicate when a write collides with the unique name constraint.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	GetByName(ctx context.Context, name string) (Category, error)
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, c Category) error
	Delete(ctx context.Context, id string) error
}

type ProductEventsPublisher interface {
	PublishProductDeleted(ctx context.Context, productID string) error
}
