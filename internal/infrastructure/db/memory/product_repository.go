// Package memory provides process-local repositories guarded by a single
// writer lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// PersistFunc receives the full product set, ordered by id, after every
// mutation. A non-nil error rolls the mutation back.
type PersistFunc func(products []domain.Product) error

// ProductRepository keeps products in a map keyed by id. All mutations,
// including id assignment, run under one lock, so each id is handed out at
// most once.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int]domain.Product
	persist  PersistFunc
}

// NewProductRepository returns a repository seeded with products.
func NewProductRepository(seed ...domain.Product) *ProductRepository {
	r := &ProductRepository{products: make(map[int]domain.Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	return r
}

// WithPersist installs fn as the write-through hook.
func (r *ProductRepository) WithPersist(fn PersistFunc) *ProductRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persist = fn
	return r
}

// Create assigns max(existing ids)+1, or 1 when empty.
func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for id := range r.products {
		if id >= next {
			next = id + 1
		}
	}

	stored := *p
	stored.ID = next
	r.products[next] = stored

	if err := r.flush(); err != nil {
		delete(r.products, next)
		return err
	}

	p.ID = next
	return nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// FindByName returns the lowest-id product with the given name.
func (r *ProductRepository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.sortedLocked() {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = *p

	if err := r.flush(); err != nil {
		r.products[p.ID] = prev
		return err
	}
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)

	if err := r.flush(); err != nil {
		r.products[id] = prev
		return err
	}
	return nil
}

func (r *ProductRepository) FilterByPrice(_ context.Context, min, max float64) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Price >= min && p.Price <= max }), nil
}

func (r *ProductRepository) FilterByQuantity(_ context.Context, min, max int) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Quantity >= min && p.Quantity <= max }), nil
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

// Len reports the number of stored products.
func (r *ProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func (r *ProductRepository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.sortedLocked() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *ProductRepository) sortedLocked() []domain.Product {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// flush must be called with mu held for writing.
func (r *ProductRepository) flush() error {
	if r.persist == nil {
		return nil
	}
	if err := r.persist(r.sortedLocked()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}
