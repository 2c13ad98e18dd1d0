package models

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TransactionIncome marks a transaction that increases the balance.
	TransactionIncome TransactionType = "income"

	// TransactionExpense marks a transaction that decreases the balance.
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the two supported values.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense entry in a user's ledger.
// Amounts are stored in minor currency units (cents) to avoid floating
// point rounding at the persistence layer.
type Transaction struct {
	// ID is the internal unique identifier of the transaction.
	ID int64 `json:"id"`

	// UserID is the owner of the transaction. Required for data isolation.
	UserID int64 `json:"-"`

	// CategoryID is an optional reference to a user-defined category.
	CategoryID *int64 `json:"category_id,omitempty"`

	// Type marks the entry as income or expense.
	Type TransactionType `json:"type"`

	// AmountCents is the transaction amount in minor units. Always positive;
	// the sign is implied by Type.
	AmountCents int64 `json:"amount_cents"`

	// OccurredOn is the calendar date the transaction took place.
	OccurredOn time.Time `json:"occurred_on"`

	// Note is an optional free-form description.
	Note string `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}

// TransactionFilter represents search criteria for querying a user's ledger.
// Only set fields participate in database-level filtering.
type TransactionFilter struct {
	// UserID filters records by owner. Required.
	UserID int64 `json:"-"`

	// Type narrows the result to income or expense entries when non-empty.
	Type TransactionType `json:"type,omitempty"`

	// CategoryID narrows the result to a single category when non-nil.
	CategoryID *int64 `json:"category_id,omitempty"`

	// From and To bound OccurredOn inclusively when non-zero.
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// TransactionUpdate represents criteria for updating a single ledger entry.
// Only non-nil fields will be updated (partial update support).
type TransactionUpdate struct {
	// ID is the unique identifier of the record to update. Required.
	ID int64 `json:"id"`

	// UserID is the owner of the record. Required for data isolation.
	UserID int64 `json:"-"`

	// CategoryID replaces the category reference when non-nil.
	CategoryID *int64 `json:"category_id,omitempty"`

	// Type replaces the transaction type when non-nil.
	Type *TransactionType `json:"type,omitempty"`

	// AmountCents replaces the amount when non-nil.
	AmountCents *int64 `json:"amount_cents,omitempty"`

	// OccurredOn replaces the transaction date when non-nil.
	OccurredOn *time.Time `json:"occurred_on,omitempty"`

	// Note replaces the description when non-nil.
	Note *string `json:"note,omitempty"`
}
