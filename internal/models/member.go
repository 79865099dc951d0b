package models

import "github.com/google/uuid"

// MemberKind distinguishes registered members from guests.
type MemberKind string

const (
	// MemberRegistered is a member backed by a user account.
	// Its Key is the user's ID, so the same person shares one key
	// across every group they belong to.
	MemberRegistered MemberKind = "registered"

	// MemberGuest is a member with no account, identified only by a
	// display name. Its Key is a synthetic per-group UUID.
	MemberGuest MemberKind = "guest"
)

// Member represents one participant in a group.
//
// Expenses, splits and settlements reference members by Key. Within one
// group a Key appears at most once.
type Member struct {
	// Key is the opaque member identifier: the user ID for registered
	// members, a synthetic ID for guests.
	Key string

	// GroupID is the group this membership belongs to.
	GroupID string

	// Kind is registered or guest.
	Kind MemberKind

	// DisplayName is the name shown in group views. For registered
	// members it mirrors the user's display name at join time.
	DisplayName string

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}

// NewRegisteredMember builds a membership for an existing user.
func NewRegisteredMember(groupID string, user *User) Member {
	return Member{
		Key:         user.ID,
		GroupID:     groupID,
		Kind:        MemberRegistered,
		DisplayName: user.DisplayName,
	}
}

// NewGuestMember builds a membership for someone without an account.
func NewGuestMember(groupID, displayName string) Member {
	return Member{
		Key:         uuid.New().String(),
		GroupID:     groupID,
		Kind:        MemberGuest,
		DisplayName: displayName,
	}
}
