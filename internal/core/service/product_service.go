package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/ports"
	"github.com/gestionstock/product-api/internal/core/validation"
)

// ProductService orchestrates validation, persistence and event
// publication for products.
type ProductService struct {
	repo      ports.ProductRepository
	validator *validation.Engine
	events    ports.ProductEventPublisher
	log       zerolog.Logger
}

// NewProductService wires the service. events may be nil, in which case no
// events are published.
func NewProductService(repo ports.ProductRepository, validator *validation.Engine, events ports.ProductEventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, validator: validator, events: events, log: log}
}

// Create validates in, persists it and confirms the write by looking the
// product up by name.
func (s *ProductService) Create(ctx context.Context, in domain.ProductFields) (*domain.Product, error) {
	p, err := s.validator.ValidateCreate(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, p.Name); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: product %q missing after create", domain.ErrStorage, p.Name)
		}
		return nil, err
	}

	s.log.Info().Int("product_id", p.ID).Str("name", p.Name).Msg("product created")
	s.publish(ctx, domain.ProductCreated, *p)
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges patch onto the stored product. A missing product is
// reported before the patch is validated.
func (s *ProductService) Update(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := s.validator.ValidateUpdate(*existing, patch)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return merged, nil
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		s.log.Error().Err(err).Int("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.log.Info().Int("product_id", id).Msg("product updated")
	s.publish(ctx, domain.ProductUpdated, *merged)
	return merged, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int("product_id", id).Msg("product deleted")
	s.publish(ctx, domain.ProductDeleted, *existing)
	return nil
}

// List applies at most one range filter. Price bounds win over stock
// bounds; a missing bound is 0 or the type's maximum.
func (s *ProductService) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	switch {
	case q.HasPriceBound():
		lo, hi := 0.0, math.MaxFloat64
		if q.MinPrice != nil {
			lo = *q.MinPrice
		}
		if q.MaxPrice != nil {
			hi = *q.MaxPrice
		}
		return s.repo.FilterByPrice(ctx, lo, hi)

	case q.HasStockBound():
		lo, hi := 0, math.MaxInt
		if q.MinStock != nil {
			lo = *q.MinStock
		}
		if q.MaxStock != nil {
			hi = *q.MaxStock
		}
		return s.repo.FilterByQuantity(ctx, lo, hi)

	default:
		return s.repo.List(ctx)
	}
}

// publish never fails the calling operation.
func (s *ProductService) publish(ctx context.Context, t domain.ProductEventType, p domain.Product) {
	if s.events == nil {
		return
	}
	ev := domain.ProductEvent{Type: t, ProductID: p.ID, Product: p, OccurredAt: time.Now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Int("product_id", p.ID).Msg("product event not published")
	}
}
