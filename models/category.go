package models

import "time"

// Category is a user-defined label for grouping transactions.
// Names are unique per user and per kind.
type Category struct {
	// ID is the internal unique identifier of the category.
	ID int64 `json:"id"`

	// UserID is the owner of the category.
	UserID int64 `json:"-"`

	// Name is the display label, unique within the owner's categories.
	Name string `json:"name"`

	// Kind restricts the category to income or expense transactions.
	Kind TransactionType `json:"kind"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}
