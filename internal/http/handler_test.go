package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logger"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/testutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router http.Handler
	store  *testutil.MemStore
	pub    *testutil.RecordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := testutil.NewMemStore()
	pub := &testutil.RecordingPublisher{}
	log := logger.Nop()

	h := NewHandler(
		catalog.NewProductService(store.Products(), store.Categories(), pub, log),
		catalog.NewCategoryService(store.Categories(), store.Products()),
		cart.NewService(store.Carts(), store.Products(), pub, log),
		log,
		0,
	)
	m := metrics.NewServerMetrics(prometheus.NewRegistry(), "test")
	return &testServer{router: NewRouter(h, m, []string{"*"}), store: store, pub: pub}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type productEnvelope struct {
	Product catalog.Product `json:"product"`
}

type categoryEnvelope struct {
	Category catalog.Category `json:"category"`
}

type cartEnvelope struct {
	Cart    cart.Cart `json:"cart"`
	Message string    `json:"message"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func (s *testServer) createProduct(t *testing.T, name string, price float64) catalog.Product {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": name, "price": price, "brand": "Acme", "description": name + " description",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[productEnvelope](t, rec).Product
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"storefront-service"}`, rec.Body.String())
}

func TestCartScenarioOverHTTP(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Widget", 10)

	rec := s.do(t, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[cartEnvelope](t, rec).Cart
	assert.Empty(t, created.Products)
	assert.JSONEq(t, `[]`, mustJSON(t, created.Products))

	cartPath := "/api/carts/" + created.ID

	rec = s.do(t, http.MethodPost, cartPath, map[string]any{"productId": p.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 20.0, decode[cartEnvelope](t, rec).Cart.TotalPrice)

	rec = s.do(t, http.MethodPost, cartPath, map[string]any{"productId": p.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[cartEnvelope](t, rec).Cart
	require.Len(t, c.Products, 1)
	assert.Equal(t, cart.LineItem{ProductID: p.ID, Quantity: 5, TotalItemPrice: 50}, c.Products[0])
	assert.Equal(t, 50.0, c.TotalPrice)

	rec = s.do(t, http.MethodPut, cartPath, map[string]any{"productId": p.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	c = decode[cartEnvelope](t, rec).Cart
	assert.Equal(t, 10.0, c.Products[0].TotalItemPrice)
	assert.Equal(t, 10.0, c.TotalPrice)

	rec = s.do(t, http.MethodDelete, cartPath+"/delete/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	removed := decode[cartEnvelope](t, rec)
	assert.Equal(t, "Product removed from cart: "+p.ID, removed.Message)
	assert.Empty(t, removed.Cart.Products)
	assert.Equal(t, 0.0, removed.Cart.TotalPrice)

	rec = s.do(t, http.MethodDelete, cartPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart removed.", decode[messageEnvelope](t, rec).Message)

	rec = s.do(t, http.MethodGet, cartPath, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveNonEmptyCart(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Widget", 1)

	rec := s.do(t, http.MethodPost, "/api/carts", nil)
	c := decode[cartEnvelope](t, rec).Cart
	rec = s.do(t, http.MethodPost, "/api/carts/"+c.ID, map[string]any{"productId": p.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/carts/"+c.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart is not empty, cannot be removed.", decode[messageEnvelope](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/carts/"+c.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartErrors(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Widget", 1)
	c := decode[cartEnvelope](t, s.do(t, http.MethodPost, "/api/carts", nil)).Cart

	tests := map[string]struct {
		method   string
		path     string
		body     any
		wantCode int
		wantMsg  string
	}{
		"malformed cart id": {
			method: http.MethodGet, path: "/api/carts/not-a-uuid",
			wantCode: http.StatusBadRequest, wantMsg: "Cart ID must be a valid id",
		},
		"unknown cart": {
			method: http.MethodGet, path: "/api/carts/" + uuid.NewString(),
			wantCode: http.StatusNotFound, wantMsg: "Could not find the cart with the provided ID.",
		},
		"zero quantity": {
			method: http.MethodPost, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": p.ID, "quantity": 0},
			wantCode: http.StatusUnprocessableEntity, wantMsg: "Quantity must be a positive integer",
		},
		"negative quantity": {
			method: http.MethodPut, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": p.ID, "quantity": -2},
			wantCode: http.StatusUnprocessableEntity, wantMsg: "Quantity must be a positive integer",
		},
		"quantity above the cap": {
			method: http.MethodPost, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": p.ID, "quantity": cart.MaxQuantity + 1},
			wantCode: http.StatusUnprocessableEntity, wantMsg: "Quantity of a product in the cart cannot exceed 10000.",
		},
		"quantity max int": {
			method: http.MethodPut, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": p.ID, "quantity": math.MaxInt},
			wantCode: http.StatusUnprocessableEntity, wantMsg: "Quantity of a product in the cart cannot exceed 10000.",
		},
		"malformed product id in body": {
			method: http.MethodPost, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": "123", "quantity": 1},
			wantCode: http.StatusBadRequest, wantMsg: "Product ID must be a valid id",
		},
		"unknown product": {
			method: http.MethodPost, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": uuid.NewString(), "quantity": 1},
			wantCode: http.StatusNotFound, wantMsg: "Could not find the product with the provided ID.",
		},
		"update product not in cart": {
			method: http.MethodPut, path: "/api/carts/" + c.ID,
			body:     map[string]any{"productId": p.ID, "quantity": 1},
			wantCode: http.StatusNotFound, wantMsg: "The product is not in the cart.",
		},
		"remove product not in cart": {
			method: http.MethodDelete, path: "/api/carts/" + c.ID + "/delete/" + p.ID,
			wantCode: http.StatusNotFound, wantMsg: "The product is not in the cart.",
		},
		"malformed json": {
			method: http.MethodPost, path: "/api/carts/" + c.ID,
			body:     "{",
			wantCode: http.StatusBadRequest, wantMsg: "Invalid request body.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantMsg, decode[messageEnvelope](t, rec).Message)
		})
	}
}

func TestListingsEmptyAreNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/products", "/api/categories", "/api/carts"} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestProductEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "Tools"})
	require.Equal(t, http.StatusCreated, rec.Code)
	cat := decode[categoryEnvelope](t, rec).Category

	rec = s.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Hammer", "price": 12.5, "brand": "Forge", "description": "Claw", "category_id": cat.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[productEnvelope](t, rec).Product

	rec = s.do(t, http.MethodGet, "/api/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, p.ID, decode[productEnvelope](t, rec).Product.ID)

	rec = s.do(t, http.MethodGet, "/api/products/category/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/products/"+p.ID, map[string]any{"price": 15})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"product":{"name":"Hammer","price":15,"brand":"Forge","description":"Claw","category_id":"`+cat.ID+`"}}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Hammer", "price": 1, "brand": "Forge", "description": "Claw", "category_id": cat.ID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Saw", "price": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Saw"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Price must be a non-negative number", decode[messageEnvelope](t, rec).Message)

	rec = s.do(t, http.MethodDelete, "/api/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{p.ID}, s.pub.ProductDeletion)

	rec = s.do(t, http.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "ab"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Invalid category name. It must be a string of at least 3 characters.", decode[messageEnvelope](t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "Garden"})
	require.Equal(t, http.StatusCreated, rec.Code)
	garden := decode[categoryEnvelope](t, rec).Category

	rec = s.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "Garden"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/categories/"+garden.ID, map[string]any{"name": "Outdoor"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"category":{"name":"Outdoor"}}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Rake", "price": 9, "category_id": garden.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/categories/"+garden.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/categories/"+garden.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/categories/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFailureIsGenericInternalError(t *testing.T) {
	s := newTestServer(t)
	s.store.Err = errors.New("pq: connection refused")

	rec := s.do(t, http.MethodGet, "/api/carts", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := decode[messageEnvelope](t, rec).Message
	assert.NotContains(t, msg, "connection refused")
}

func TestCorrelationIDEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderCorrelationID, "corr-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, "corr-123", rec.Header().Get(HeaderCorrelationID))

	rec = s.do(t, http.MethodGet, "/health", nil)
	_, err := uuid.Parse(rec.Header().Get(HeaderCorrelationID))
	assert.NoError(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", nil)

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `handler="/health"`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not find this route.", decode[messageEnvelope](t, rec).Message)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
