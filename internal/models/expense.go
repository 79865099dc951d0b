package models

// Expense represents one outlay paid by a member of a group.
// Expenses are immutable once created and always carry at least one split.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PaidBy is the member key of the payer. Must be a member of GroupID.
	PaidBy string

	// Amount is the expense total in minor units (cents). Always positive.
	Amount int64

	// Description is the human-readable purpose ("Dinner at Luigi's").
	Description string

	// Category is a free-form spending category ("food", "transport", ...).
	Category string

	// SpentAt is the Unix timestamp of when the money was spent.
	SpentAt int64

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64

	// CreatedBy is the user ID who recorded the expense.
	CreatedBy string
}

// ExpenseSplit records one member's share of an expense.
// For any expense, the split amounts sum exactly to the expense amount
// and a member key appears at most once.
type ExpenseSplit struct {
	// ExpenseID is the expense this share belongs to.
	ExpenseID string

	// MemberKey is the owing member.
	MemberKey string

	// Amount is this member's share in minor units (cents).
	Amount int64
}
