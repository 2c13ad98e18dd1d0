package models

import "time"

// Goal is a savings target the user tracks progress against.
type Goal struct {
	// ID is the internal unique identifier of the goal.
	ID int64 `json:"id"`

	// UserID is the owner of the goal.
	UserID int64 `json:"-"`

	// Name is the display label of the goal.
	Name string `json:"name"`

	// TargetCents is the amount the user wants to save, in minor units.
	TargetCents int64 `json:"target_cents"`

	// SavedCents is the amount saved so far, in minor units.
	SavedCents int64 `json:"saved_cents"`

	// Deadline is an optional date the target should be reached by.
	Deadline *time.Time `json:"deadline,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Goal model.
func (g Goal) TableName() string {
	return "goals"
}

// GoalUpdate represents criteria for updating a single goal.
// Only non-nil fields will be updated (partial update support).
type GoalUpdate struct {
	// ID is the unique identifier of the goal to update. Required.
	ID int64 `json:"id"`

	// UserID is the owner of the goal. Required for data isolation.
	UserID int64 `json:"-"`

	// Name replaces the display label when non-nil.
	Name *string `json:"name,omitempty"`

	// TargetCents replaces the target amount when non-nil.
	TargetCents *int64 `json:"target_cents,omitempty"`

	// SavedCents replaces the saved amount when non-nil.
	SavedCents *int64 `json:"saved_cents,omitempty"`

	// Deadline replaces the deadline when non-nil.
	Deadline *time.Time `json:"deadline,omitempty"`
}
