package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	m := bookModel{ID: b.ID, Title: b.Title, Author: b.Author}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("%w: insert book: %w", domain.ErrStorage, err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	var m bookModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("%w: find book: %w", domain.ErrStorage, err)
	}
	b := m.toDomain()
	return &b, nil
}

func (r *BookRepository) Update(ctx context.Context, b *domain.Book) error {
	res := r.db.WithContext(ctx).Model(&bookModel{}).Where("id = ?", b.ID).
		Updates(map[string]any{"title": b.Title, "author": b.Author})
	if res.Error != nil {
		return fmt.Errorf("%w: update book: %w", domain.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&bookModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("%w: delete book: %w", domain.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	var ms []bookModel
	if err := r.db.WithContext(ctx).Order("title, id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%w: list books: %w", domain.ErrStorage, err)
	}
	out := make([]domain.Book, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toDomain())
	}
	return out, nil
}
