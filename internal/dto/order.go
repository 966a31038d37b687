package dto

import "time"

// OrderItem is one line of an order's item list. Price is in minor
// currency units and is the unit price at the time of ordering.
type OrderItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// OrderResponse represents an order as exposed via transport layers,
// with items already deserialized from their storage form.
type OrderResponse struct {
	ID        int64       `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Whatsapp  string      `json:"whatsapp"`
	Status    string      `json:"status,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateOrderRequest is the payload accepted at checkout. Total is a
// pointer so a missing field is distinguishable from an explicit zero.
type CreateOrderRequest struct {
	Items    []OrderItem `json:"items"`
	Total    *int64      `json:"total"`
	Whatsapp string      `json:"whatsapp"`
}

// PatchOrderRequest carries the patchable subset of an order.
type PatchOrderRequest struct {
	Status   *string `json:"status"`
	Whatsapp *string `json:"whatsapp"`
}

// Empty reports whether the patch carries no fields at all.
func (r PatchOrderRequest) Empty() bool {
	return r.Status == nil && r.Whatsapp == nil
}
