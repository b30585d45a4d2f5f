package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/validation"
)

type stubBookRepo struct {
	books map[string]domain.Book
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) error {
	r.books[b.ID] = *b
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return &b, nil
}

func (r *stubBookRepo) Update(_ context.Context, b *domain.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return domain.ErrBookNotFound
	}
	r.books[b.ID] = *b
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubBookRepo) List(_ context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func TestBookService_CRUD(t *testing.T) {
	repo := &stubBookRepo{books: make(map[string]domain.Book)}
	svc := NewBookService(repo, validation.NewEngine())
	ctx := context.Background()

	b, err := svc.Create(ctx, domain.BookFields{Title: strPtr("Germinal"), Author: strPtr("Zola")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("expected generated id")
	}

	updated, err := svc.Update(ctx, b.ID, domain.BookFields{Author: strPtr("Émile Zola")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Germinal" || updated.Author != "Émile Zola" {
		t.Fatalf("unexpected book: %+v", updated)
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookService_RejectsShortFields(t *testing.T) {
	repo := &stubBookRepo{books: make(map[string]domain.Book)}
	svc := NewBookService(repo, validation.NewEngine())

	if _, err := svc.Create(context.Background(), domain.BookFields{Title: strPtr("Go"), Author: strPtr("Pike")}); !errors.Is(err, domain.ErrInvalidBook) {
		t.Fatalf("expected ErrInvalidBook, got %v", err)
	}
	if len(repo.books) != 0 {
		t.Fatalf("invalid book must not be stored")
	}
}

func TestBookService_UpdateMissing(t *testing.T) {
	svc := NewBookService(&stubBookRepo{books: make(map[string]domain.Book)}, validation.NewEngine())

	if _, err := svc.Update(context.Background(), "nope", domain.BookFields{Title: strPtr("Title")}); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
