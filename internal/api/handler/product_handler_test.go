package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type stubProductService struct {
	createFn func(ctx context.Context, in domain.ProductFields) (*domain.Product, error)
	getFn    func(ctx context.Context, id int) (*domain.Product, error)
	updateFn func(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error)
	deleteFn func(ctx context.Context, id int) error
	listFn   func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
}

func (s *stubProductService) Create(ctx context.Context, in domain.ProductFields) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Update(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubProductService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	return s.listFn(ctx, q)
}

func unexpectedCreate(t *testing.T) func(context.Context, domain.ProductFields) (*domain.Product, error) {
	return func(context.Context, domain.ProductFields) (*domain.Product, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}
}

func TestProductHandler_List_ParsesBounds(t *testing.T) {
	var got domain.ProductQuery
	stub := &stubProductService{
		listFn: func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
			got = q
			return []domain.Product{{ID: 1, Name: "Chaise"}}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/products?minPrice=10.5&maxStock=20&maxPrice=abc", "")

	if err := NewProductHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.MinPrice == nil || *got.MinPrice != 10.5 {
		t.Fatalf("minPrice not parsed: %+v", got.MinPrice)
	}
	if got.MaxPrice != nil {
		t.Fatalf("non-numeric maxPrice must count as absent")
	}
	if got.MaxStock == nil || *got.MaxStock != 20 {
		t.Fatalf("maxStock not parsed: %+v", got.MaxStock)
	}
	if got.MinStock != nil {
		t.Fatalf("minStock must be absent")
	}
}

func TestProductHandler_List_IgnoresNonFiniteBounds(t *testing.T) {
	var got domain.ProductQuery
	stub := &stubProductService{
		listFn: func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
			got = q
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/products?minPrice=NaN&maxPrice=Inf&minStock=1.5", "")

	if err := NewProductHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.HasPriceBound() || got.HasStockBound() {
		t.Fatalf("expected no bounds, got %+v", got)
	}
}

func TestProductHandler_ListV2_RejectsUnknownParams(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/v2/products?price[$ne]=1", "")

	if err := NewProductHandler(stub).ListV2(c); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/products/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := NewProductHandler(&stubProductService{}).Get(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/products/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := NewProductHandler(stub).Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Create_V1(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, in domain.ProductFields) (*domain.Product, error) {
			if in.Name == nil || *in.Name != "Test product" || in.Category != nil {
				t.Fatalf("unexpected fields: %+v", in)
			}
			if in.Quantity == nil || *in.Quantity != 10 || in.Price == nil || *in.Price != 10.5 {
				t.Fatalf("unexpected numbers: %+v", in)
			}
			return &domain.Product{ID: 3, Name: *in.Name, Category: domain.PlaceholderCategory}, nil
		},
	}
	body := `{"name":"Test product","description":"Test description","quantity":10,"price":10.50}`
	c, rec := newTestContext(http.MethodPost, "/api/products", body)

	if err := NewProductHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp createProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 3 {
		t.Fatalf("expected id 3, got %d", resp.ID)
	}
}

func TestProductHandler_Create_V1RequiresDescription(t *testing.T) {
	stub := &stubProductService{createFn: unexpectedCreate(t)}
	c, _ := newTestContext(http.MethodPost, "/api/products", `{"name":"Test product","quantity":10,"price":1}`)

	if err := NewProductHandler(stub).Create(c); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_CreateV2_RequiresCategory(t *testing.T) {
	stub := &stubProductService{createFn: unexpectedCreate(t)}
	body := `{"name":"Test product","description":"d","quantity":10,"price":1}`
	c, _ := newTestContext(http.MethodPost, "/api/v2/products", body)

	err := NewProductHandler(stub).CreateV2(c)
	if statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_CreateV2_ReturnsProduct(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, in domain.ProductFields) (*domain.Product, error) {
			return &domain.Product{ID: 1, Name: *in.Name, Category: *in.Category, Quantity: *in.Quantity, Price: *in.Price}, nil
		},
	}
	body := `{"name":"Lampe","description":"d","category":"Deco","quantity":2,"price":15}`
	c, rec := newTestContext(http.MethodPost, "/api/v2/products", body)

	if err := NewProductHandler(stub).CreateV2(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ID != 1 || p.Category != "Deco" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestProductHandler_Create_PassesValidationErrorThrough(t *testing.T) {
	verr := &domain.ValidationError{Kind: domain.ErrInvalidProduct, Fields: []domain.FieldError{{Field: "name", Message: "name must be at least 3 characters"}}}
	stub := &stubProductService{
		createFn: func(ctx context.Context, in domain.ProductFields) (*domain.Product, error) {
			return nil, verr
		},
	}
	c, _ := newTestContext(http.MethodPost, "/api/products", `{"name":"ab","description":"d","quantity":1,"price":1}`)

	if err := NewProductHandler(stub).Create(c); !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestProductHandler_Create_RejectsFractionalQuantity(t *testing.T) {
	stub := &stubProductService{createFn: unexpectedCreate(t)}
	c, _ := newTestContext(http.MethodPost, "/api/products", `{"name":"abc","description":"d","quantity":1.5,"price":1}`)

	if err := NewProductHandler(stub).Create(c); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Update_PartialPatch(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error) {
			if id != 4 {
				t.Fatalf("unexpected id %d", id)
			}
			if patch.Name == nil || *patch.Name != "Modified" {
				t.Fatalf("name not forwarded: %+v", patch)
			}
			if patch.Price != nil || patch.Quantity != nil || patch.Description != nil || patch.Category != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			return &domain.Product{ID: id, Name: *patch.Name}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/api/v2/products/4", `{"name":"Modified"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := NewProductHandler(stub).UpdateV2(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.Name != "Modified" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestProductHandler_Update_V1DropsCategory(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id int, patch domain.ProductFields) (*domain.Product, error) {
			if patch.Category != nil {
				t.Fatalf("v1 update must not forward category: %q", *patch.Category)
			}
			if patch.Quantity == nil || *patch.Quantity != 2 {
				t.Fatalf("quantity not forwarded: %+v", patch)
			}
			return &domain.Product{ID: id, Quantity: *patch.Quantity}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/api/products/4", `{"category":"Outillage","quantity":2}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := NewProductHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Update_InvalidID(t *testing.T) {
	c, _ := newTestContext(http.MethodPut, "/api/products/x", `{"name":"Modified"}`)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := NewProductHandler(&stubProductService{}).Update(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	deleted := 0
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id int) error {
			deleted = id
			return nil
		},
	}
	c, rec := newTestContext(http.MethodDelete, "/api/products/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := NewProductHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 7 {
		t.Fatalf("expected id 7 to be deleted, got %d", deleted)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id int) error { return domain.ErrProductNotFound },
	}
	c, _ := newTestContext(http.MethodDelete, "/api/products/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := NewProductHandler(stub).Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
