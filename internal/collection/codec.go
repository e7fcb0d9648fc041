package collection

import (
	"encoding/json"
	"fmt"
)

// Encode serializes items as a JSON array. A nil slice encodes as "[]".
func Encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode collection: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array produced by [Encode].
//
// "null" and non-array documents are rejected so a corrupt value can't masquerade as an empty collection.
func Decode[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("failed to decode collection: not an array")
	}
	return items, nil
}
