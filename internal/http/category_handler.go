package httpapi

import "net/http"

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "c_id", "Category ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	category, err := h.categories.Get(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	category, err := h.categories.Create(ctx, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "c_id", "Category ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	category, err := h.categories.Update(ctx, id, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "c_id", "Category ID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	if err := h.categories.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted category."})
}
