package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/ports"
	"github.com/gestionstock/product-api/internal/core/validation"
)

type BookService struct {
	repo      ports.BookRepository
	validator *validation.Engine
}

func NewBookService(repo ports.BookRepository, validator *validation.Engine) *BookService {
	return &BookService{repo: repo, validator: validator}
}

func (s *BookService) Create(ctx context.Context, in domain.BookFields) (*domain.Book, error) {
	b, err := s.validator.ValidateBook(in)
	if err != nil {
		return nil, err
	}
	b.ID = uuid.NewString()
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) Update(ctx context.Context, id string, patch domain.BookFields) (*domain.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := s.validator.ValidateBookUpdate(*existing, patch)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}
