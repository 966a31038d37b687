package dto

import "time"

// ProductResponse represents a product as exposed via transport layers.
// Price is in minor currency units.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest is the payload accepted on product creation.
// InStock defaults to true when omitted.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	ImageURL    *string `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

// UpdateProductRequest carries a partial field set; only non-nil fields
// are applied to the stored row.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.ImageURL == nil && r.InStock == nil
}
