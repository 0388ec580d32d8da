package catalog

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProduct is the input of ProductService.Create.
type NewProduct struct {
	Name        string
	Price       float64
	Brand       string
	Description string
	CategoryID  *string
}

// ProductPatch holds the fields supplied to an update; nil means untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Brand       *string
	Description *string
	CategoryID  *string
}

func (p ProductPatch) apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Brand != nil {
		prod.Brand = *p.Brand
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		prod.CategoryID = &id
	}
}

// ProductSummary is the subset returned after an update.
type ProductSummary struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{
		Name:        p.Name,
		Price:       p.Price,
		Brand:       p.Brand,
		Description: p.Description,
		CategoryID:  p.CategoryID,
	}
}

// ProductKey identifies a product by content for duplicate detection.
type ProductKey struct {
	Name        string
	Brand       string
	Description string
	CategoryID  *string
}

func (p Product) Key() ProductKey {
	return ProductKey{Name: p.Name, Brand: p.Brand, Description: p.Description, CategoryID: p.CategoryID}
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategorySummary is the subset returned after an update.
type CategorySummary struct {
	Name string `json:"name"`
}

const MinCategoryNameLength = 3
