package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionstock/product-api/internal/api/metrics"
	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/ports"
)

// ProductHandler serves both product API versions. v1 answers writes with a
// confirmation message; v2 answers with the stored product.
type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns products, optionally filtered by a price or a stock range.
//
// @Summary      List products
// @Description  A price bound takes precedence over stock bounds. Non-numeric bounds are ignored.
// @Tags         products
// @Produce      json
// @Param        minPrice  query     number   false  "Lowest price, inclusive"
// @Param        maxPrice  query     number   false  "Highest price, inclusive"
// @Param        minStock  query     integer  false  "Lowest quantity, inclusive"
// @Param        maxStock  query     integer  false  "Highest quantity, inclusive"
// @Success      200       {array}   domain.Product
// @Failure      500       {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), parseProductQuery(c.QueryParams()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListV2 is List behind authentication. Unknown query parameters are
// rejected rather than ignored.
//
// @Summary      List products (v2)
// @Tags         products-v2
// @Produce      json
// @Security     BearerAuth
// @Param        minPrice  query     number   false  "Lowest price, inclusive"
// @Param        maxPrice  query     number   false  "Highest price, inclusive"
// @Param        minStock  query     integer  false  "Lowest quantity, inclusive"
// @Param        maxStock  query     integer  false  "Highest quantity, inclusive"
// @Success      200       {array}   domain.Product
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/v2/products [get]
func (h *ProductHandler) ListV2(c echo.Context) error {
	if key, ok := unknownParam(c.QueryParams()); ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported query parameter: "+key)
	}
	return h.List(c)
}

// Get returns a single product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	p, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create registers a product. Category is optional and defaults to
// "Placeholder".
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      200   {object}  createProductResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.create(c, req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createProductResponse{Message: "product created", ID: p.ID})
}

// CreateV2 registers a product; every field including category is required.
//
// @Summary      Create a product (v2)
// @Tags         products-v2
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductV2Request  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v2/products [post]
func (h *ProductHandler) CreateV2(c echo.Context) error {
	var req createProductV2Request
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.create(c, req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update applies a partial update.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	if _, err := h.update(c, false); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product updated"})
}

// UpdateV2 applies a partial update and returns the stored product.
//
// @Summary      Update a product (v2)
// @Tags         products-v2
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v2/products/{id} [put]
func (h *ProductHandler) UpdateV2(c echo.Context) error {
	p, err := h.update(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a product. Both API versions answer with a message.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
// @Router       /api/v2/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	err = h.products.Delete(c.Request().Context(), id)
	observe("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

func (h *ProductHandler) create(c echo.Context, in domain.ProductFields) (*domain.Product, error) {
	p, err := h.products.Create(c.Request().Context(), in)
	observe("create", err)
	return p, err
}

// v1 updates never touch the category; v2 may patch it.
func (h *ProductHandler) update(c echo.Context, withCategory bool) (*domain.Product, error) {
	id, err := pathProductID(c)
	if err != nil {
		return nil, err
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	fields := req.fields()
	if !withCategory {
		fields.Category = nil
	}
	p, err := h.products.Update(c.Request().Context(), id, fields)
	observe("update", err)
	return p, err
}

func observe(operation string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidProduct):
		outcome = "invalid"
	case errors.Is(err, domain.ErrProductNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	metrics.ProductOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
