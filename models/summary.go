package models

import "time"

// CategoryTotal is one row of the per-category breakdown in a summary.
type CategoryTotal struct {
	// CategoryID is nil for transactions without a category.
	CategoryID *int64 `json:"category_id,omitempty"`

	// CategoryName is empty for transactions without a category.
	CategoryName string `json:"category_name,omitempty"`

	// Type marks the grouped transactions as income or expense.
	Type TransactionType `json:"type"`

	// TotalCents is the summed amount of the group, in minor units.
	TotalCents int64 `json:"total_cents"`
}

// Summary aggregates a user's ledger over a period. The client renders it
// as the dashboard totals and charts.
type Summary struct {
	// From and To are the inclusive bounds the summary was computed over.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	// IncomeCents is the sum of all income transactions in the period.
	IncomeCents int64 `json:"income_cents"`

	// ExpenseCents is the sum of all expense transactions in the period.
	ExpenseCents int64 `json:"expense_cents"`

	// BalanceCents is IncomeCents minus ExpenseCents.
	BalanceCents int64 `json:"balance_cents"`

	// ByCategory is the per-category breakdown of the period.
	ByCategory []CategoryTotal `json:"by_category"`
}
