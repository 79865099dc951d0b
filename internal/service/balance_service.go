package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sharveena123/paypals/internal/ledger"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
)

// BalanceService derives balances from the record store. Every call
// re-reads the records and recomputes from scratch: balances are never
// cached or persisted, so concurrent writers can only ever produce a
// different snapshot, not a partially updated one.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// MemberBalance is one member's net position within a group.
type MemberBalance struct {
	Member models.Member
	Net    int64 // positive: the group owes this member
}

// GroupBalances computes the per-member nets for one group plus the acting
// user's own net and the suggested repayments.
type GroupBalances struct {
	Members  []MemberBalance
	UserNet  int64
	Payments []ledger.DebtEdge
}

// Group derives the balance view for one group.
func (s *BalanceService) Group(ctx context.Context, userID, groupID string) (*GroupBalances, error) {
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	isMember := false
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Key
		if m.Key == userID {
			isMember = true
		}
	}
	if !isMember {
		return nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, groupID)
	}

	balances, err := s.groupLedger(ctx, groupID, keys)
	if err != nil {
		return nil, err
	}

	view := &GroupBalances{
		UserNet:  ledger.ProjectGroupBalance(balances, userID),
		Payments: ledger.SimplifyDebts(balances),
	}
	for _, m := range members {
		view.Members = append(view.Members, MemberBalance{
			Member: m,
			Net:    ledger.ProjectGroupBalance(balances, m.Key),
		})
	}

	return view, nil
}

// Summary derives the user's dashboard scalars across all their groups.
func (s *BalanceService) Summary(ctx context.Context, userID string) (ledger.Summary, error) {
	balances, expenses, err := s.userLedger(ctx, userID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.ProjectUserSummary(balances, expenses, userID), nil
}

// Friend derives the net between the user and one friend across every
// group they share. Positive means the friend owes the user.
func (s *BalanceService) Friend(ctx context.Context, userID, friendKey string) (int64, error) {
	balances, _, err := s.userLedger(ctx, userID)
	if err != nil {
		return 0, err
	}
	return ledger.ProjectFriendBalance(balances, userID, friendKey), nil
}

// CategoryReport aggregates the user's own shares by category.
func (s *BalanceService) CategoryReport(ctx context.Context, userID string) ([]storage.CategoryTotal, error) {
	return s.store.CategoryTotals(ctx, userID)
}

// groupLedger loads one group's records and runs the aggregator over them.
func (s *BalanceService) groupLedger(ctx context.Context, groupID string, memberKeys []string) (ledger.Balances, error) {
	expenses, err := s.store.ListGroupExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	splits, err := s.store.ListGroupSplits(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListGroupSettlements(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.ComputeBalances(memberKeys, expenses, splits, settlements)
	if err != nil {
		// Data integrity violation, not user error: log it as a defect.
		slog.Error("inconsistent records in group", "group_id", groupID, "error", err)
		return nil, err
	}
	return balances, nil
}

// userLedger merges the per-group balances of every group the user
// belongs to, and returns the user's expenses alongside.
func (s *BalanceService) userLedger(ctx context.Context, userID string) (ledger.Balances, []models.Expense, error) {
	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	merged := make(ledger.Balances)
	var allExpenses []models.Expense
	for _, g := range groups {
		members, err := s.store.ListGroupMembers(ctx, g.ID)
		if err != nil {
			return nil, nil, err
		}
		keys := make([]string, len(members))
		for i, m := range members {
			keys[i] = m.Key
		}

		balances, err := s.groupLedger(ctx, g.ID, keys)
		if err != nil {
			return nil, nil, err
		}
		merged.Merge(balances)

		expenses, err := s.store.ListGroupExpenses(ctx, g.ID)
		if err != nil {
			return nil, nil, err
		}
		allExpenses = append(allExpenses, expenses...)
	}

	return merged, allExpenses, nil
}
