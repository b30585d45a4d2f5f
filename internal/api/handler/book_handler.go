package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionstock/product-api/internal/core/ports"
)

type BookHandler struct {
	books ports.BookService
}

func NewBookHandler(books ports.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// @Summary  List books
// @Tags     books
// @Produce  json
// @Success  200  {array}   domain.Book
// @Failure  500  {object}  errorResponse
// @Router   /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.books.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    id   path      string  true  "Book ID"
// @Success  200  {object}  domain.Book
// @Failure  404  {object}  errorResponse
// @Router   /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	b, err := h.books.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// @Summary  Add a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    body  body      bookRequest  true  "Book"
// @Success  200   {object}  domain.Book
// @Failure  400   {object}  errorResponse
// @Router   /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	b, err := h.books.Create(c.Request().Context(), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// @Summary  Update a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    id    path      string       true  "Book ID"
// @Param    body  body      bookRequest  true  "Fields to change"
// @Success  200   {object}  domain.Book
// @Failure  400   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Router   /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	b, err := h.books.Update(c.Request().Context(), c.Param("id"), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// @Summary  Delete a book
// @Tags     books
// @Produce  json
// @Param    id   path      string  true  "Book ID"
// @Success  200  {object}  messageResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.books.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "book deleted"})
}
