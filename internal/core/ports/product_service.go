package ports

import (
	"context"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type ProductService interface {
	Create(ctx context.Context, in domain.ProductFields) (*domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
}

// ProductEventPublisher forwards product lifecycle events downstream.
type ProductEventPublisher interface {
	Publish(ctx context.Context, event domain.ProductEvent) error
}
