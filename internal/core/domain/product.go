package domain

// PlaceholderCategory is assigned to products created without a category.
const PlaceholderCategory = "Placeholder"

// Product is a stock item managed through the products API.
type Product struct {
	ID          int     `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Category    string  `json:"category" bson:"category"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Price       float64 `json:"price" bson:"price"`
}

// ProductFields carries a candidate product or a partial update. A nil
// pointer means the field was not supplied.
type ProductFields struct {
	Name        *string
	Description *string
	Category    *string
	Quantity    *int
	Price       *float64
}

// IsEmpty reports whether no field was supplied.
func (f ProductFields) IsEmpty() bool {
	return f.Name == nil && f.Description == nil && f.Category == nil &&
		f.Quantity == nil && f.Price == nil
}

// ProductQuery holds the optional range bounds of a product listing.
type ProductQuery struct {
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
}

// HasPriceBound reports whether either price bound was supplied.
func (q ProductQuery) HasPriceBound() bool {
	return q.MinPrice != nil || q.MaxPrice != nil
}

// HasStockBound reports whether either stock bound was supplied.
func (q ProductQuery) HasStockBound() bool {
	return q.MinStock != nil || q.MaxStock != nil
}
