package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
)

const serviceName = "storefront-service"

type Handler struct {
	products   *catalog.ProductService
	categories *catalog.CategoryService
	carts      *cart.Service
	logger     *logger.Logger
	timeout    time.Duration
}

func NewHandler(products *catalog.ProductService, categories *catalog.CategoryService, carts *cart.Service, log *logger.Logger, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 3 * time.Second
	}
	return &Handler{
		products:   products,
		categories: categories,
		carts:      carts,
		logger:     log,
		timeout:    requestTimeout,
	}
}

// ctx bounds store work for one request.
func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}
