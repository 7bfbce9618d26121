// Package model defines the item record and the ordered collection it lives in.
package model

import "fmt"

// Size is the enumerated size of an item.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists every accepted Size in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// Item is a single stored record. ID is always assigned by the server.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Size  Size    `json:"size"`
}

// Fields are the caller-supplied parts of an Item.
type Fields struct {
	Name  string
	Price float64
	Size  Size
}

// WithID builds an Item from validated fields and an id.
func (f Fields) WithID(id int64) Item {
	return Item{ID: id, Name: f.Name, Price: f.Price, Size: f.Size}
}

// IDStrategy selects how a new item's id is derived from the collection.
type IDStrategy string

const (
	// IDFromLast uses the last element's id + 1. Ids can collide when the
	// collection is not sorted by id.
	IDFromLast IDStrategy = "last"
	// IDFromMax uses the largest id in the collection + 1.
	IDFromMax IDStrategy = "max"
)

// ParseIDStrategy converts a config value into an IDStrategy.
// An empty string selects IDFromLast.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case "", IDFromLast:
		return IDFromLast, nil
	case IDFromMax:
		return IDFromMax, nil
	default:
		return "", fmt.Errorf("unknown id strategy: %q (supported: last, max)", s)
	}
}
