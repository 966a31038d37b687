package order

import (
	"encoding/json"

	"github.com/Qathar8/Arianna-beauty/internal/dto"
)

// encodeItems serializes an item list into the TEXT column form.
func encodeItems(items []dto.OrderItem) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeItems restores the structured item list from its storage form.
// An empty column decodes to an empty list rather than failing.
func decodeItems(raw string) ([]dto.OrderItem, error) {
	if raw == "" {
		return []dto.OrderItem{}, nil
	}
	var items []dto.OrderItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []dto.OrderItem{}
	}
	return items, nil
}
