package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "c_id", "Category ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	products, err := h.products.ListByCategory(ctx, categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "p_id", "Product ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	product, err := h.products.Get(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	product, err := h.products.Create(ctx, catalog.NewProduct{
		Name:        req.Name,
		Price:       *req.Price,
		Brand:       req.Brand,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "p_id", "Product ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	product, err := h.products.Update(ctx, id, catalog.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Brand:       req.Brand,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "p_id", "Product ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	if err := h.products.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted product."})
}
