package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/google/uuid"
)

// CategoryService owns the category taxonomy. Deleting a category that is
// still referenced by products is rejected; references are never cleared.
type CategoryService struct {
	categories CategoryRepository
	products   ProductRepository

	now   func() time.Time
	newID func() string
}

func NewCategoryService(categories CategoryRepository, products ProductRepository) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Something went wrong, could not find a Category.", err)
	}
	if len(categories) == 0 {
		return nil, apperr.NotFound("Could not find categories")
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Category{}, apperr.NotFound(fmt.Sprintf("Could not find category with id %s", id))
		}
		return Category{}, apperr.Internal("Something went wrong, could not find a Category.", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (Category, error) {
	name, err := validName(name)
	if err != nil {
		return Category{}, err
	}

	taken, err := s.nameTakenBy(ctx, name)
	if err != nil {
		return Category{}, apperr.Internal("Creating category failed, please try again.", err)
	}
	if taken != "" {
		return Category{}, apperr.Conflict("Category already exists.")
	}

	now := s.now()
	c := Category{ID: s.newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Category{}, apperr.Conflict("Category already exists.")
		}
		return Category{}, apperr.Internal("Creating category failed, please try again.", err)
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (CategorySummary, error) {
	name, err := validName(name)
	if err != nil {
		return CategorySummary{}, err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return CategorySummary{}, err
	}

	taken, err := s.nameTakenBy(ctx, name)
	if err != nil {
		return CategorySummary{}, apperr.Internal("Something went wrong, could not update category.", err)
	}
	if taken != "" && taken != id {
		return CategorySummary{}, apperr.Conflict("Category with the same name already exists.")
	}

	c.Name = name
	c.UpdatedAt = s.now()
	if err := s.categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			return CategorySummary{}, apperr.Conflict("Category with the same name already exists.")
		case errors.Is(err, ErrNotFound):
			return CategorySummary{}, apperr.NotFound(fmt.Sprintf("Could not find category with id %s", id))
		}
		return CategorySummary{}, apperr.Internal("Something went wrong, could not update category.", err)
	}
	return CategorySummary{Name: c.Name}, nil
}

const msgCategoryInUse = "Cannot delete a category with associated products. Remove or reassign the products first."

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Could not find category for this id.")
		}
		return apperr.Internal("Something went wrong, could not delete category.", err)
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return apperr.Internal("Something went wrong while checking for products with this category.", err)
	}
	if n > 0 {
		return apperr.Validation(msgCategoryInUse)
	}

	// A product created after the count is caught by the store as ErrInUse.
	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrInUse):
			return apperr.Validation(msgCategoryInUse)
		case errors.Is(err, ErrNotFound):
			return apperr.NotFound("Could not find category for this id.")
		}
		return apperr.Internal("Something went wrong, could not delete category.", err)
	}
	return nil
}

// nameTakenBy returns the id of the category using name, or "".
func (s *CategoryService) nameTakenBy(ctx context.Context, name string) (string, error) {
	existing, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return existing.ID, nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinCategoryNameLength {
		return "", apperr.Validation("Invalid category name. It must be a string of at least 3 characters.")
	}
	return name, nil
}
