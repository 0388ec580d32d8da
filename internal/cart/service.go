package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/google/uuid"
)

const (
	msgCartNotFound    = "Could not find the cart with the provided ID."
	msgProductNotFound = "Could not find the product with the provided ID."
	msgNotInCart       = "The product is not in the cart."
	msgConcurrent      = "The cart was modified concurrently, please retry."
	msgInvalidQuantity = "Quantity must be a positive integer"
)

var msgQuantityTooLarge = fmt.Sprintf("Quantity of a product in the cart cannot exceed %d.", MaxQuantity)

type Service struct {
	repo      Repository
	products  ProductReader
	publisher EventsPublisher
	logger    *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, products ProductReader, publisher EventsPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context) (*Cart, error) {
	c := New(s.newID(), s.now())
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Internal("Error creating a new cart", err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Cart, error) {
	carts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Something went wrong, could not find a Cart.", err)
	}
	if len(carts) == 0 {
		return nil, apperr.NotFound("Could not find cart")
	}
	return carts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Cart, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(msgCartNotFound)
		}
		return nil, apperr.Internal("Error searching for the cart.", err)
	}
	return c, nil
}

// AddProduct adds quantity of productID, priced at the product's current
// price, and returns the updated cart.
func (s *Service) AddProduct(ctx context.Context, cartID, productID string, quantity int) (*Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(productID, p.Price, quantity); err != nil {
		return nil, apperr.Validation(msgQuantityTooLarge)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProduct sets the quantity of a line already in the cart and reprices
// it at the product's current price.
func (s *Service) UpdateProduct(ctx context.Context, cartID, productID string, quantity int) (*Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Item(productID); !ok {
		return nil, apperr.NotFound(msgNotInCart)
	}

	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := c.SetItemQuantity(productID, p.Price, quantity); err != nil {
		if errors.Is(err, ErrQuantityTooLarge) {
			return nil, apperr.Validation(msgQuantityTooLarge)
		}
		return nil, apperr.NotFound(msgNotInCart)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) RemoveProduct(ctx context.Context, cartID, productID string) (*Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, apperr.NotFound(msgNotInCart)
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes an empty cart. A non-empty cart is left untouched and
// removed is false; that is not an error. The delete only applies to the
// version that was checked for emptiness.
func (s *Service) Remove(ctx context.Context, cartID string) (removed bool, err error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return false, err
	}
	if !c.IsEmpty() {
		return false, nil
	}

	if err := s.repo.Delete(ctx, cartID, c.Version); err != nil {
		switch {
		case errors.Is(err, ErrVersionConflict):
			return false, apperr.Conflict(msgConcurrent)
		case errors.Is(err, ErrNotFound):
			return false, apperr.NotFound(msgCartNotFound)
		}
		return false, apperr.Internal("Error removing the cart.", err)
	}

	if err := s.publisher.PublishCartRemoved(ctx, cartID); err != nil {
		s.logger.Warn("publish cart removed failed", "cart_id", cartID, "error", err)
	}
	return true, nil
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return apperr.Validation(msgInvalidQuantity)
	}
	if quantity > MaxQuantity {
		return apperr.Validation(msgQuantityTooLarge)
	}
	return nil
}

func (s *Service) product(ctx context.Context, productID string) (catalog.Product, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Product{}, apperr.NotFound(msgProductNotFound)
		}
		return catalog.Product{}, apperr.Internal("Error searching for the product.", err)
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, c); err != nil {
		switch {
		case errors.Is(err, ErrVersionConflict):
			return apperr.Conflict(msgConcurrent)
		case errors.Is(err, ErrNotFound):
			return apperr.NotFound(msgCartNotFound)
		}
		return apperr.Internal("Error saving the cart.", fmt.Errorf("save cart %s: %w", c.ID, err))
	}

	if err := s.publisher.PublishCartUpdated(ctx, c); err != nil {
		s.logger.Warn("publish cart updated failed", "cart_id", c.ID, "error", err)
	}
	return nil
}
