package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

// MemStore is an in-memory implementation of the catalog and cart
// repositories used by service and handler tests. Setting Err makes every
// call fail with it.
type MemStore struct {
	mu         sync.Mutex
	products   map[string]catalog.Product
	categories map[string]catalog.Category
	carts      map[string]cart.Cart
	order      map[string]int
	seq        int

	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{
		products:   map[string]catalog.Product{},
		categories: map[string]catalog.Category{},
		carts:      map[string]cart.Cart{},
		order:      map[string]int{},
	}
}

func (m *MemStore) Products() *MemProducts { return &MemProducts{m} }
func (m *MemStore) Categories() *MemCategories { return &MemCategories{m} }
func (m *MemStore) Carts() *MemCarts { return &MemCarts{m} }

func (m *MemStore) track(id string) {
	if _, ok := m.order[id]; !ok {
		m.seq++
		m.order[id] = m.seq
	}
}

func (m *MemStore) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return m.order[ids[i]] < m.order[ids[j]] })
}

// SetPrice changes a stored product's price, as a concurrent update would.
func (m *MemStore) SetPrice(id string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	p.Price = price
	m.products[id] = p
}

type MemProducts struct{ m *MemStore }

func (r *MemProducts) List(ctx context.Context) ([]catalog.Product, error) {
	return r.filter(func(catalog.Product) bool { return true })
}

func (r *MemProducts) ListByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	return r.filter(func(p catalog.Product) bool {
		return p.CategoryID != nil && *p.CategoryID == categoryID
	})
}

func (r *MemProducts) filter(keep func(catalog.Product) bool) ([]catalog.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	ids := make([]string, 0, len(r.m.products))
	for id, p := range r.m.products {
		if keep(p) {
			ids = append(ids, id)
		}
	}
	r.m.sortByInsertion(ids)
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.m.products[id])
	}
	return out, nil
}

func (r *MemProducts) Get(ctx context.Context, id string) (catalog.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return catalog.Product{}, r.m.Err
	}
	p, ok := r.m.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (r *MemProducts) Exists(ctx context.Context, key catalog.ProductKey) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return false, r.m.Err
	}
	for _, p := range r.m.products {
		k := p.Key()
		if k.Name == key.Name && k.Brand == key.Brand && k.Description == key.Description && sameRef(k.CategoryID, key.CategoryID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemProducts) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	ps, err := r.ListByCategory(ctx, categoryID)
	return int64(len(ps)), err
}

func (r *MemProducts) Create(ctx context.Context, p catalog.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	r.m.products[p.ID] = p
	r.m.track(p.ID)
	return nil
}

func (r *MemProducts) Update(ctx context.Context, p catalog.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	if _, ok := r.m.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	r.m.products[p.ID] = p
	return nil
}

func (r *MemProducts) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	if _, ok := r.m.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.m.products, id)
	return nil
}

type MemCategories struct{ m *MemStore }

func (r *MemCategories) List(ctx context.Context) ([]catalog.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	ids := make([]string, 0, len(r.m.categories))
	for id := range r.m.categories {
		ids = append(ids, id)
	}
	r.m.sortByInsertion(ids)
	out := make([]catalog.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.m.categories[id])
	}
	return out, nil
}

func (r *MemCategories) Get(ctx context.Context, id string) (catalog.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return catalog.Category{}, r.m.Err
	}
	c, ok := r.m.categories[id]
	if !ok {
		return catalog.Category{}, catalog.ErrNotFound
	}
	return c, nil
}

func (r *MemCategories) GetByName(ctx context.Context, name string) (catalog.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return catalog.Category{}, r.m.Err
	}
	for _, c := range r.m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return catalog.Category{}, catalog.ErrNotFound
}

func (r *MemCategories) Create(ctx context.Context, c catalog.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	for _, existing := range r.m.categories {
		if existing.Name == c.Name {
			return catalog.ErrDuplicate
		}
	}
	r.m.categories[c.ID] = c
	r.m.track(c.ID)
	return nil
}

func (r *MemCategories) Update(ctx context.Context, c catalog.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	if _, ok := r.m.categories[c.ID]; !ok {
		return catalog.ErrNotFound
	}
	for id, existing := range r.m.categories {
		if id != c.ID && existing.Name == c.Name {
			return catalog.ErrDuplicate
		}
	}
	r.m.categories[c.ID] = c
	return nil
}

func (r *MemCategories) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	if _, ok := r.m.categories[id]; !ok {
		return catalog.ErrNotFound
	}
	// Mirrors the products.category_id foreign key.
	for _, p := range r.m.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return catalog.ErrInUse
		}
	}
	delete(r.m.categories, id)
	return nil
}

type MemCarts struct{ m *MemStore }

func (r *MemCarts) List(ctx context.Context) ([]cart.Cart, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	ids := make([]string, 0, len(r.m.carts))
	for id := range r.m.carts {
		ids = append(ids, id)
	}
	r.m.sortByInsertion(ids)
	out := make([]cart.Cart, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneCart(r.m.carts[id]))
	}
	return out, nil
}

func (r *MemCarts) Get(ctx context.Context, id string) (*cart.Cart, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return nil, r.m.Err
	}
	c, ok := r.m.carts[id]
	if !ok {
		return nil, cart.ErrNotFound
	}
	cp := cloneCart(c)
	return &cp, nil
}

func (r *MemCarts) Create(ctx context.Context, c *cart.Cart) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	c.Version = 1
	r.m.carts[c.ID] = cloneCart(*c)
	r.m.track(c.ID)
	return nil
}

func (r *MemCarts) Save(ctx context.Context, c *cart.Cart) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	stored, ok := r.m.carts[c.ID]
	if !ok {
		return cart.ErrNotFound
	}
	if stored.Version != c.Version {
		return cart.ErrVersionConflict
	}
	c.Version++
	r.m.carts[c.ID] = cloneCart(*c)
	return nil
}

func (r *MemCarts) Delete(ctx context.Context, id string, version int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.Err != nil {
		return r.m.Err
	}
	stored, ok := r.m.carts[id]
	if !ok {
		return cart.ErrNotFound
	}
	if stored.Version != version {
		return cart.ErrVersionConflict
	}
	delete(r.m.carts, id)
	return nil
}

func cloneCart(c cart.Cart) cart.Cart {
	items := make([]cart.LineItem, len(c.Products))
	copy(items, c.Products)
	c.Products = items
	return c
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
