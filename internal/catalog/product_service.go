package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/google/uuid"
)

type ProductService struct {
	products   ProductRepository
	categories CategoryRepository
	publisher  ProductEventsPublisher
	logger     *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewProductService(products ProductRepository, categories CategoryRepository, publisher ProductEventsPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		publisher:  publisher,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Something went wrong, could not find a Product.", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("Could not find products")
	}
	return products, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperr.Internal("Something went wrong, could not find a Product.", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("Could not find products for category %s", categoryID))
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, apperr.NotFound(fmt.Sprintf("Could not find product with id %s", id))
		}
		return Product{}, apperr.Internal("Something went wrong, could not find a Product.", err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in NewProduct) (Product, error) {
	if in.Price < 0 {
		return Product{}, apperr.Validation("Price must be a non-negative number")
	}

	now := s.now()
	p := Product{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Brand:       strings.TrimSpace(in.Brand),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	exists, err := s.products.Exists(ctx, p.Key())
	if err != nil {
		return Product{}, apperr.Internal("Creating product failed, please try again.", err)
	}
	if exists {
		return Product{}, apperr.Conflict("Product already exists.")
	}

	if p.CategoryID != nil {
		if err := s.requireCategory(ctx, *p.CategoryID); err != nil {
			return Product{}, err
		}
	}

	if err := s.products.Create(ctx, p); err != nil {
		return Product{}, apperr.Internal("Creating product failed, please try again.", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (ProductSummary, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return ProductSummary{}, apperr.Validation("Price must be a non-negative number")
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return ProductSummary{}, err
	}

	if patch.CategoryID != nil {
		if err := s.requireCategory(ctx, *patch.CategoryID); err != nil {
			return ProductSummary{}, err
		}
	}

	patch.apply(&p)
	p.UpdatedAt = s.now()

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ProductSummary{}, apperr.NotFound(fmt.Sprintf("Could not find product with id %s", id))
		}
		return ProductSummary{}, apperr.Internal("Something went wrong, could not update product.", err)
	}
	return p.Summary(), nil
}

// Delete removes the product unconditionally. Carts that still reference it
// fail lazily the next time that line is priced.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("Could not find product with id %s", id))
		}
		return apperr.Internal("Something went wrong, could not delete product.", err)
	}

	if err := s.publisher.PublishProductDeleted(ctx, id); err != nil {
		s.logger.Warn("publish product deleted failed", "product_id", id, "error", err)
	}
	return nil
}

func (s *ProductService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("Could not find category with id %s", categoryID))
		}
		return apperr.Internal("Something went wrong, could not find a Category.", err)
	}
	return nil
}
