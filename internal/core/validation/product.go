// Package validation checks product and book fields against explicit
// per-field rule tables before anything reaches a repository.
package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// Field identifies a product attribute subject to validation.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldQuantity    Field = "quantity"
	FieldPrice       Field = "price"
)

// ProductFieldOrder is the order in which product fields are evaluated and
// reported.
var ProductFieldOrder = []Field{FieldName, FieldDescription, FieldCategory, FieldQuantity, FieldPrice}

type rule struct {
	required bool
	tag      string
	message  string
}

// A field without an entry is unconstrained.
type ruleSet map[Field]rule

var (
	nameRule     = rule{required: true, tag: "min=3,max=50", message: "name must be between 3 and 50 characters"}
	categoryRule = rule{tag: "required", message: "category must not be empty"}
	priceRule    = rule{required: true, tag: "gte=0", message: "price must be a non-negative number"}
)

var productCreateRules = ruleSet{
	FieldName:     nameRule,
	FieldCategory: categoryRule,
	FieldQuantity: {required: true, tag: "gte=1", message: "quantity must be a positive integer"},
	FieldPrice:    priceRule,
}

// On update nothing is required; absent fields keep their stored value.
var productUpdateRules = ruleSet{
	FieldName:     {tag: nameRule.tag, message: nameRule.message},
	FieldCategory: categoryRule,
	FieldQuantity: {tag: "gte=0", message: "quantity must be zero or more"},
	FieldPrice:    {tag: priceRule.tag, message: priceRule.message},
}

// Engine validates candidate records. It is safe for concurrent use.
type Engine struct {
	v *validator.Validate
}

func NewEngine() *Engine {
	return &Engine{v: validator.New()}
}

// ValidateCreate checks every field of a new product and returns the
// record to persist. A missing category becomes PlaceholderCategory.
func (e *Engine) ValidateCreate(in domain.ProductFields) (*domain.Product, error) {
	if errs := e.checkProduct(productCreateRules, in); len(errs) > 0 {
		return nil, &domain.ValidationError{Kind: domain.ErrInvalidProduct, Fields: errs}
	}

	p := &domain.Product{Category: domain.PlaceholderCategory}
	applyProduct(p, in)
	return p, nil
}

// ValidateUpdate merges patch onto existing. Only supplied fields are
// validated and changed; the id is never touched. An empty patch returns
// existing unchanged.
func (e *Engine) ValidateUpdate(existing domain.Product, patch domain.ProductFields) (*domain.Product, error) {
	merged := existing
	if patch.IsEmpty() {
		return &merged, nil
	}

	if errs := e.checkProduct(productUpdateRules, patch); len(errs) > 0 {
		return nil, &domain.ValidationError{Kind: domain.ErrInvalidProduct, Fields: errs}
	}

	applyProduct(&merged, patch)
	merged.ID = existing.ID
	return &merged, nil
}

func (e *Engine) checkProduct(rules ruleSet, in domain.ProductFields) []domain.FieldError {
	var errs []domain.FieldError
	for _, f := range ProductFieldOrder {
		value, present := productValue(in, f)
		if fe := e.check(rules, f, value, present); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func (e *Engine) check(rules ruleSet, f Field, value any, present bool) *domain.FieldError {
	r, ok := rules[f]
	if !ok {
		return nil
	}
	if !present {
		if r.required {
			return &domain.FieldError{Field: string(f), Message: string(f) + " is required"}
		}
		return nil
	}
	if err := e.v.Var(value, r.tag); err != nil {
		return &domain.FieldError{Field: string(f), Message: r.message}
	}
	return nil
}

func productValue(in domain.ProductFields, f Field) (any, bool) {
	switch f {
	case FieldName:
		if in.Name != nil {
			return *in.Name, true
		}
	case FieldDescription:
		if in.Description != nil {
			return *in.Description, true
		}
	case FieldCategory:
		if in.Category != nil {
			return *in.Category, true
		}
	case FieldQuantity:
		if in.Quantity != nil {
			return *in.Quantity, true
		}
	case FieldPrice:
		if in.Price != nil {
			return *in.Price, true
		}
	}
	return nil, false
}

func applyProduct(p *domain.Product, in domain.ProductFields) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
}
