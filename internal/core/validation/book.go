package validation

import "github.com/gestionstock/product-api/internal/core/domain"

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
)

var bookFieldOrder = []Field{FieldTitle, FieldAuthor}

var bookCreateRules = ruleSet{
	FieldTitle:  {required: true, tag: "min=3", message: "title must be at least 3 characters"},
	FieldAuthor: {required: true, tag: "min=3", message: "author must be at least 3 characters"},
}

var bookUpdateRules = ruleSet{
	FieldTitle:  {tag: "min=3", message: "title must be at least 3 characters"},
	FieldAuthor: {tag: "min=3", message: "author must be at least 3 characters"},
}

// ValidateBook checks a new book.
func (e *Engine) ValidateBook(in domain.BookFields) (*domain.Book, error) {
	if errs := e.checkBook(bookCreateRules, in); len(errs) > 0 {
		return nil, &domain.ValidationError{Kind: domain.ErrInvalidBook, Fields: errs}
	}
	return &domain.Book{Title: *in.Title, Author: *in.Author}, nil
}

// ValidateBookUpdate merges patch onto existing.
func (e *Engine) ValidateBookUpdate(existing domain.Book, patch domain.BookFields) (*domain.Book, error) {
	if errs := e.checkBook(bookUpdateRules, patch); len(errs) > 0 {
		return nil, &domain.ValidationError{Kind: domain.ErrInvalidBook, Fields: errs}
	}

	merged := existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Author != nil {
		merged.Author = *patch.Author
	}
	return &merged, nil
}

func (e *Engine) checkBook(rules ruleSet, in domain.BookFields) []domain.FieldError {
	var errs []domain.FieldError
	for _, f := range bookFieldOrder {
		var (
			value   any
			present bool
		)
		switch f {
		case FieldTitle:
			if in.Title != nil {
				value, present = *in.Title, true
			}
		case FieldAuthor:
			if in.Author != nil {
				value, present = *in.Author, true
			}
		}
		if fe := e.check(rules, f, value, present); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}
