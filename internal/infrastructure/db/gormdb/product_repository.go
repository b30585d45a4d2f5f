package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// ProductRepository delegates id assignment to the table's auto-increment
// column.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := toProductModel(*p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("%w: insert product: %w", domain.ErrStorage, err)
	}
	p.ID = m.ID
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "find product")
	}
	p := m.toDomain()
	return &p, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&m).Error; err != nil {
		return nil, notFoundOr(err, "find product by name")
	}
	p := m.toDomain()
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing productModel
		if err := tx.Select("id").First(&existing, "id = ?", p.ID).Error; err != nil {
			return notFoundOr(err, "update product")
		}
		m := toProductModel(*p)
		if err := tx.Save(&m).Error; err != nil {
			return fmt.Errorf("%w: update product: %w", domain.ErrStorage, err)
		}
		return nil
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&productModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("%w: delete product: %w", domain.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FilterByPrice(ctx context.Context, min, max float64) ([]domain.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("price >= ? AND price <= ?", min, max))
}

func (r *ProductRepository) FilterByQuantity(ctx context.Context, min, max int) ([]domain.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("quantity >= ? AND quantity <= ?", min, max))
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *ProductRepository) find(q *gorm.DB) ([]domain.Product, error) {
	var ms []productModel
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%w: list products: %w", domain.ErrStorage, err)
	}
	out := make([]domain.Product, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrProductNotFound
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
