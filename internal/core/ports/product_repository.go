package ports

import (
	"context"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// ProductRepository owns product records. Create assigns the id on the
// product it is given. Range filters are inclusive on both ends and every
// listing is ordered by id.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
	FilterByPrice(ctx context.Context, min, max float64) ([]domain.Product, error)
	FilterByQuantity(ctx context.Context, min, max int) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
