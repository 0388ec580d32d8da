package httpapi

import (
	"net/http"
)

const (
	msgCartRemoved  = "Cart removed."
	msgCartNotEmpty = "Cart is not empty, cannot be removed."
)

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=10000"`
}

func (h *Handler) ListCarts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	carts, err := h.carts.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"carts": carts})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathID(r, "cartId", "Cart ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	c, err := h.carts.Get(ctx, cartID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	c, err := h.carts.Create(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"cart": c})
}

func (h *Handler) AddProductToCart(w http.ResponseWriter, r *http.Request) {
	cartID, req, err := cartItemInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	c, err := h.carts.AddProduct(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"cart": c})
}

func (h *Handler) UpdateProductInCart(w http.ResponseWriter, r *http.Request) {
	cartID, req, err := cartItemInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	c, err := h.carts.UpdateProduct(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (h *Handler) RemoveProductFromCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathID(r, "cartId", "Cart ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	productID, err := pathID(r, "productId", "Product ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	c, err := h.carts.RemoveProduct(ctx, cartID, productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product removed from cart: " + productID,
		"cart":    c,
	})
}

// RemoveCart answers 200 in both outcomes; a non-empty cart is kept and the
// message says so.
func (h *Handler) RemoveCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := pathID(r, "cartId", "Cart ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	removed, err := h.carts.Remove(ctx, cartID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := msgCartRemoved
	if !removed {
		msg = msgCartNotEmpty
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func cartItemInput(r *http.Request) (string, cartItemRequest, error) {
	var req cartItemRequest
	cartID, err := pathID(r, "cartId", "Cart ID")
	if err != nil {
		return "", req, err
	}
	if err := decodeJSON(r, &req); err != nil {
		return "", req, err
	}
	return cartID, req, nil
}
