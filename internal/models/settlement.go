package models

// SettlementStatus is the lifecycle state of a settlement.
type SettlementStatus string

const (
	// SettlementPending is recorded but not yet confirmed by the payee.
	// Pending settlements do not offset balances.
	SettlementPending SettlementStatus = "pending"

	// SettlementCompleted is confirmed and nets against debt.
	SettlementCompleted SettlementStatus = "completed"
)

// Settlement represents a payment between two group members to clear debt.
// Settlements are recorded facts: the only mutation is the pending to
// completed transition.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromMember is the member key of the payer (debtor settling up).
	FromMember string

	// ToMember is the member key of the payee (creditor being paid).
	ToMember string

	// Amount is the payment amount in minor units (cents). Always positive.
	Amount int64

	// Status is pending or completed.
	Status SettlementStatus

	// Note is an optional description ("bank transfer", "cash").
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// SettledAt is the Unix timestamp when the settlement was completed.
	// Zero while pending.
	SettledAt int64

	// CreatedBy is the user ID who recorded the settlement.
	CreatedBy string
}
