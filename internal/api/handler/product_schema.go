package handler

import "github.com/gestionstock/product-api/internal/core/domain"

// errorResponse is the error envelope rendered by the API error handler.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// productRequest is a partial product: absent JSON keys stay nil.
type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

func (r productRequest) fields() domain.ProductFields {
	return domain.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// createProductRequest is the v1 create body. Category is optional there.
type createProductRequest struct {
	Name        *string  `json:"name"        validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Category    *string  `json:"category"`
	Quantity    *int     `json:"quantity"    validate:"required"`
	Price       *float64 `json:"price"       validate:"required"`
}

func (r createProductRequest) fields() domain.ProductFields {
	return productRequest(r).fields()
}

// createProductV2Request is the v2 create body; every field is mandatory.
type createProductV2Request struct {
	Name        *string  `json:"name"        validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Category    *string  `json:"category"    validate:"required"`
	Quantity    *int     `json:"quantity"    validate:"required"`
	Price       *float64 `json:"price"       validate:"required"`
}

func (r createProductV2Request) fields() domain.ProductFields {
	return productRequest(r).fields()
}

type createProductResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type bookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
}

func (r bookRequest) fields() domain.BookFields {
	return domain.BookFields{Title: r.Title, Author: r.Author}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}
