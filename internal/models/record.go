package models

import "time"

type Location struct {
	ID                uint64
	Name              string
	Code              string
	Description       string
	Category          string
	ParentID          *uint64
	MaxItems          *int64
	MaxWeight         *int64
	WeightUnit        string
	AllowedCategories string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Item struct {
	ID              uint64
	Name            string
	SKU             string
	Description     string
	Category        string
	Unit            string
	Quantity        int64
	MinQuantity     *int64
	LocationID      *uint64
	ManageInventory bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
