package model

import "time"

// Item is the single record kept in the items collection.
type Item struct {
	ID          string
	Item        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch carries the fields of an update. Nil fields are left untouched.
type ItemPatch struct {
	Item        *string
	Description *string
	Price       *float64
}

func (p ItemPatch) IsEmpty() bool {
	return p.Item == nil && p.Description == nil && p.Price == nil
}

// Apply writes the non-nil fields of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Item != nil {
		item.Item = *p.Item
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
}
