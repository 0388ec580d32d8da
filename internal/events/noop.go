package events

import (
	"context"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartUpdated(context.Context, *cart.Cart) error { return nil }
func (NoopPublisher) PublishCartRemoved(context.Context, string) error { return nil }
func (NoopPublisher) PublishProductDeleted(context.Context, string) error { return nil }
func (NoopPublisher) Close() error { return nil }
