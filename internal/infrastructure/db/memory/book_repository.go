package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type BookRepository struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]domain.Book)}
}

func (r *BookRepository) Create(_ context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = *b
	return nil
}

func (r *BookRepository) FindByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return &b, nil
}

func (r *BookRepository) Update(_ context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return domain.ErrBookNotFound
	}
	r.books[b.ID] = *b
	return nil
}

func (r *BookRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// List returns books ordered by title, then id.
func (r *BookRepository) List(_ context.Context) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
