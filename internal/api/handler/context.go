package handler

import (
	"math"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// Product list query parameters.
const (
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramMinStock = "minStock"
	paramMaxStock = "maxStock"
)

var productQueryParams = map[string]struct{}{
	paramMinPrice: {},
	paramMaxPrice: {},
	paramMinStock: {},
	paramMaxStock: {},
}

// pathProductID parses the :id segment; anything but an integer is
// ErrInvalidID.
func pathProductID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// parseProductQuery reads the range bounds. Values that do not parse as
// finite numbers count as not supplied.
func parseProductQuery(values url.Values) domain.ProductQuery {
	return domain.ProductQuery{
		MinPrice: floatParam(values, paramMinPrice),
		MaxPrice: floatParam(values, paramMaxPrice),
		MinStock: intParam(values, paramMinStock),
		MaxStock: intParam(values, paramMaxStock),
	}
}

// unknownParam returns the first query key outside the product filter set.
func unknownParam(values url.Values) (string, bool) {
	for k := range values {
		if _, ok := productQueryParams[k]; !ok {
			return k, true
		}
	}
	return "", false
}

func floatParam(values url.Values, key string) *float64 {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func intParam(values url.Values, key string) *int {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
