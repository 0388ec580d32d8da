package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the storefront API. m may be nil, in which case no
// metrics are recorded and /metrics is not served.
func NewRouter(h *Handler, m *metrics.ServerMetrics, allowOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlationID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderCorrelationID},
		ExposedHeaders: []string{HeaderCorrelationID},
		MaxAge:         300,
	}))
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Could not find this route."})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: "Method not allowed."})
	})

	r.Get("/health", h.Health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/category/{c_id}", h.ListProductsByCategory)
		r.Get("/{p_id}", h.GetProduct)
		r.Put("/{p_id}", h.UpdateProduct)
		r.Delete("/{p_id}", h.DeleteProduct)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{c_id}", h.GetCategory)
		r.Put("/{c_id}", h.UpdateCategory)
		r.Delete("/{c_id}", h.DeleteCategory)
	})

	r.Route("/api/carts", func(r chi.Router) {
		r.Get("/", h.ListCarts)
		r.Post("/", h.CreateCart)
		r.Get("/{cartId}", h.GetCart)
		r.Post("/{cartId}", h.AddProductToCart)
		r.Put("/{cartId}", h.UpdateProductInCart)
		r.Delete("/{cartId}", h.RemoveCart)
		r.Delete("/{cartId}/delete/{productId}", h.RemoveProductFromCart)
	})

	return r
}
