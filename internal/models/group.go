package models

// Group represents a named collection of members.
// Groups own expenses and settlements; deleting a group removes both
// (enforced by foreign keys in storage).
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// Description is an optional free-text description.
	Description string

	// CreatedBy is the user ID of the group creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
