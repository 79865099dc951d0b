// Package ledger implements the balance engine: split allocation, pairwise
// balance aggregation and the per-user projections. Everything in this
// package is a pure function over amounts in minor units (cents); nothing
// here touches storage.
package ledger

import (
	"errors"
	"fmt"
	"math"
)

// Method is the rule for dividing an expense among participants.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodExact      Method = "exact"
	MethodPercentage Method = "percentage"
	MethodShares     Method = "shares"
)

// percentTolerance is how far the supplied percentages may drift from 100.
const percentTolerance = 0.01

// exactToleranceCents is how far EXACT amounts may drift from the expense
// total (one minor unit). Drift within tolerance is corrected
// deterministically; drift beyond it is rejected.
const exactToleranceCents = 1

var (
	// ErrInvalidAmount is returned for a non-positive expense amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNoParticipants is returned for a split over zero members.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrSplitMismatch is returned when EXACT amounts or PERCENTAGE values
	// do not sum to the expected total within tolerance. The caller must
	// re-prompt; the split is never silently truncated.
	ErrSplitMismatch = errors.New("split does not sum to expense amount")
)

// Share is one participant's computed portion of an expense.
type Share struct {
	MemberKey string
	Amount    int64
}

// Params carries the method-specific inputs for AllocateSplit.
// Only the field matching the method is consulted.
type Params struct {
	// Exact maps member key to owed cents (MethodExact).
	Exact map[string]int64

	// Percentages maps member key to a percentage of the total
	// (MethodPercentage). Must sum to 100 within tolerance.
	Percentages map[string]float64

	// Weights maps member key to a positive share count (MethodShares).
	Weights map[string]int64
}

// AllocateSplit divides amount (cents) among participants according to
// method. The returned shares are in participant input order and sum to
// amount exactly: raw shares are rounded to whole cents, then any leftover
// cents are assigned one at a time in input order, so the same input always
// produces the same output.
func AllocateSplit(amount int64, method Method, participants []string, params Params) ([]Share, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, fmt.Errorf("duplicate participant %q", p)
		}
		seen[p] = true
	}

	switch method {
	case MethodEqual:
		return splitEqual(amount, participants), nil
	case MethodExact:
		return splitExact(amount, participants, params.Exact)
	case MethodPercentage:
		return splitPercentage(amount, participants, params.Percentages)
	case MethodShares:
		return splitShares(amount, participants, params.Weights)
	default:
		return nil, fmt.Errorf("unknown split method %q", method)
	}
}

func splitEqual(amount int64, participants []string) []Share {
	n := int64(len(participants))
	base := amount / n
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberKey: p, Amount: base}
	}
	settleRemainder(shares, amount)
	return shares
}

func splitExact(amount int64, participants []string, exact map[string]int64) ([]Share, error) {
	shares := make([]Share, len(participants))
	var sum int64
	for i, p := range participants {
		v, ok := exact[p]
		if !ok {
			return nil, fmt.Errorf("missing exact amount for %q", p)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative exact amount for %q", p)
		}
		shares[i] = Share{MemberKey: p, Amount: v}
		sum += v
	}
	if diff := amount - sum; diff > exactToleranceCents || diff < -exactToleranceCents {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSplitMismatch, sum, amount)
	}
	settleRemainder(shares, amount)
	return shares, nil
}

func splitPercentage(amount int64, participants []string, percentages map[string]float64) ([]Share, error) {
	var pctSum float64
	for _, p := range participants {
		pct, ok := percentages[p]
		if !ok {
			return nil, fmt.Errorf("missing percentage for %q", p)
		}
		if pct < 0 {
			return nil, fmt.Errorf("negative percentage for %q", p)
		}
		pctSum += pct
	}
	if math.Abs(pctSum-100) > percentTolerance {
		return nil, fmt.Errorf("%w: percentages sum to %v, want 100", ErrSplitMismatch, pctSum)
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		raw := float64(amount) * percentages[p] / 100
		shares[i] = Share{MemberKey: p, Amount: int64(math.Round(raw))}
	}
	settleRemainder(shares, amount)
	return shares, nil
}

func splitShares(amount int64, participants []string, weights map[string]int64) ([]Share, error) {
	var total int64
	for _, p := range participants {
		w, ok := weights[p]
		if !ok {
			return nil, fmt.Errorf("missing weight for %q", p)
		}
		if w <= 0 {
			return nil, fmt.Errorf("weight for %q must be positive", p)
		}
		total += w
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberKey: p, Amount: amount * weights[p] / total}
	}
	settleRemainder(shares, amount)
	return shares, nil
}

// settleRemainder adjusts shares in place so they sum to amount exactly,
// adding or removing one cent at a time in input order.
func settleRemainder(shares []Share, amount int64) {
	var sum int64
	for _, s := range shares {
		sum += s.Amount
	}
	diff := amount - sum
	step := int64(1)
	if diff < 0 {
		step = -1
		diff = -diff
	}
	for i := int64(0); i < diff; i++ {
		shares[i%int64(len(shares))].Amount += step
	}
}
