package domain

import "time"

// ProductEventType names a product lifecycle transition.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is emitted after a product write has been persisted.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  int              `json:"product_id"`
	Product    Product          `json:"product"`
	OccurredAt time.Time        `json:"occurred_at"`
}
