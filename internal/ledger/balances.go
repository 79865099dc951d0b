package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sharveena123/paypals/internal/models"
)

// ErrInvalidReference is returned when a split or settlement references a
// member outside the scoped member set, or a split references an unknown
// expense. This indicates upstream data corruption, not user error, and is
// surfaced rather than skipped.
var ErrInvalidReference = errors.New("record references unknown member or expense")

// Pair is a canonical unordered member pair: A is always the
// lexicographically smaller key.
type Pair struct {
	A, B string
}

// PairOf builds the canonical pair for two member keys.
func PairOf(x, y string) Pair {
	if x < y {
		return Pair{A: x, B: y}
	}
	return Pair{A: y, B: x}
}

// Balances maps a member pair to its net debt in cents.
// A positive value means B owes A; negative means A owes B.
type Balances map[Pair]int64

// add records that debtor owes creditor the given cents.
func (b Balances) add(creditor, debtor string, cents int64) {
	p := PairOf(creditor, debtor)
	if creditor == p.A {
		b[p] += cents
	} else {
		b[p] -= cents
	}
}

// ComputeBalances derives the pairwise net balances for a scoped record set.
// memberKeys is the set of members the records may reference; every payer,
// ower and settlement party must be in it or the whole computation fails
// with ErrInvalidReference.
//
// Each split where the owing member is not the payer adds debt from ower to
// payer. Completed settlements reduce what the payer owed; pending ones are
// ignored. The result is a pure function of the inputs: recomputing over
// the same records, in any order, yields the same mapping.
func ComputeBalances(memberKeys []string, expenses []models.Expense, splits []models.ExpenseSplit, settlements []models.Settlement) (Balances, error) {
	members := make(map[string]bool, len(memberKeys))
	for _, k := range memberKeys {
		members[k] = true
	}

	payers := make(map[string]string, len(expenses)) // expense ID -> payer key
	for _, e := range expenses {
		if !members[e.PaidBy] {
			return nil, fmt.Errorf("%w: expense %s paid by %q", ErrInvalidReference, e.ID, e.PaidBy)
		}
		payers[e.ID] = e.PaidBy
	}

	balances := make(Balances)

	for _, s := range splits {
		payer, ok := payers[s.ExpenseID]
		if !ok {
			return nil, fmt.Errorf("%w: split for expense %s", ErrInvalidReference, s.ExpenseID)
		}
		if !members[s.MemberKey] {
			return nil, fmt.Errorf("%w: split owed by %q", ErrInvalidReference, s.MemberKey)
		}
		if s.MemberKey == payer {
			continue // payer's own share is not a debt
		}
		balances.add(payer, s.MemberKey, s.Amount)
	}

	for _, s := range settlements {
		if !members[s.FromMember] || !members[s.ToMember] {
			return nil, fmt.Errorf("%w: settlement %s between %q and %q",
				ErrInvalidReference, s.ID, s.FromMember, s.ToMember)
		}
		if s.Status != models.SettlementCompleted {
			continue // pending settlements do not net against debt
		}
		balances.add(s.ToMember, s.FromMember, -s.Amount)
	}

	// Drop fully settled pairs so the mapping only carries live debt.
	for p, v := range balances {
		if v == 0 {
			delete(balances, p)
		}
	}

	return balances, nil
}

// Merge folds other into b pair by pair. Used to combine per-group
// balances into a cross-group view.
func (b Balances) Merge(other Balances) {
	for p, v := range other {
		b[p] += v
		if b[p] == 0 {
			delete(b, p)
		}
	}
}

// DebtEdge is one suggested repayment from a debtor to a creditor.
type DebtEdge struct {
	From   string
	To     string
	Amount int64
}

// SimplifyDebts reduces a balance mapping to a small set of repayments
// using greedy matching of net debtors against net creditors. The output
// is deterministic: members are processed in sorted key order.
//
// Simplified edges are a presentation aid only; the pairwise mapping
// remains the source of truth.
func SimplifyDebts(balances Balances) []DebtEdge {
	net := make(map[string]int64)
	for p, v := range balances {
		// v > 0: B owes A
		net[p.A] += v
		net[p.B] -= v
	}

	var debtors, creditors []string
	for k, v := range net {
		switch {
		case v < 0:
			debtors = append(debtors, k)
		case v > 0:
			creditors = append(creditors, k)
		}
	}
	sort.Strings(debtors)
	sort.Strings(creditors)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owes := -net[debtors[i]]
		owed := net[creditors[j]]

		amount := owes
		if owed < amount {
			amount = owed
		}
		if amount > 0 {
			edges = append(edges, DebtEdge{From: debtors[i], To: creditors[j], Amount: amount})
		}

		net[debtors[i]] += amount
		net[creditors[j]] -= amount
		if net[debtors[i]] == 0 {
			i++
		}
		if net[creditors[j]] == 0 {
			j++
		}
	}

	return edges
}
