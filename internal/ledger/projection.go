package ledger

import "github.com/sharveena123/paypals/internal/models"

// Summary is the per-user dashboard view derived from a balance mapping.
// YouOwe and YouAreOwed are magnitudes, never negative; any single pair
// contributes to exactly one of the two.
type Summary struct {
	TotalSpent int64
	YouOwe     int64
	YouAreOwed int64
}

// ProjectUserSummary derives the dashboard scalars for userKey.
// TotalSpent sums the expenses userKey paid; the owe/owed totals come from
// the pairwise nets involving userKey.
func ProjectUserSummary(balances Balances, expenses []models.Expense, userKey string) Summary {
	var s Summary
	for _, e := range expenses {
		if e.PaidBy == userKey {
			s.TotalSpent += e.Amount
		}
	}
	for p, v := range balances {
		switch userKey {
		case p.A:
			// v > 0: B owes the user
			if v > 0 {
				s.YouAreOwed += v
			} else {
				s.YouOwe += -v
			}
		case p.B:
			if v > 0 {
				s.YouOwe += v
			} else {
				s.YouAreOwed += -v
			}
		}
	}
	return s
}

// ProjectGroupBalance returns userKey's net position over a balance
// mapping: positive when the group owes the user, negative when the user
// owes the group. Scope the input record set to one group before calling.
func ProjectGroupBalance(balances Balances, userKey string) int64 {
	var net int64
	for p, v := range balances {
		switch userKey {
		case p.A:
			net += v
		case p.B:
			net -= v
		}
	}
	return net
}

// ProjectFriendBalance returns the net between userKey and friendKey from
// userKey's perspective: positive when the friend owes the user. The value
// from the friend's perspective is the exact negation.
func ProjectFriendBalance(balances Balances, userKey, friendKey string) int64 {
	p := PairOf(userKey, friendKey)
	v := balances[p]
	if userKey == p.A {
		return v
	}
	return -v
}
