package ports

import (
	"context"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) error
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	Update(ctx context.Context, b *domain.Book) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Book, error)
}

type BookService interface {
	Create(ctx context.Context, in domain.BookFields) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Update(ctx context.Context, id string, patch domain.BookFields) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Book, error)
}
