package testutil

import (
	"context"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

// RecordingPublisher captures published events. Err is returned from every
// publish call after recording it.
type RecordingPublisher struct {
	mu sync.Mutex

	CartUpdates     []cart.Cart
	CartRemovals    []string
	ProductDeletion []string

	Err error
}

func (p *RecordingPublisher) PublishCartUpdated(ctx context.Context, c *cart.Cart) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CartUpdates = append(p.CartUpdates, cloneCart(*c))
	return p.Err
}

func (p *RecordingPublisher) PublishCartRemoved(ctx context.Context, cartID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CartRemovals = append(p.CartRemovals, cartID)
	return p.Err
}

func (p *RecordingPublisher) PublishProductDeleted(ctx context.Context, productID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ProductDeletion = append(p.ProductDeletion, productID)
	return p.Err
}
