package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sharveena123/paypals/internal/ledger"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
)

// ExpenseService records expenses. Splits are computed by the ledger
// allocator and persisted together with the expense as one transaction.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseParams are the inputs for Create. Amount is in cents.
// Participants lists the member keys owing a share, in the order that
// decides who absorbs leftover cents.
type CreateExpenseParams struct {
	GroupID      string
	PaidBy       string
	Amount       int64
	Description  string
	Category     string
	SpentAt      int64
	Method       ledger.Method
	Participants []string
	SplitParams  ledger.Params
}

// Create allocates the splits for the expense and persists both
// atomically. The payer and every participant must be members of the
// group; the allocation itself never reaches storage when it fails.
func (s *ExpenseService) Create(ctx context.Context, userID string, params CreateExpenseParams) (*models.Expense, []models.ExpenseSplit, error) {
	members, err := memberSet(ctx, s.store, params.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if !members[userID] {
		return nil, nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, params.GroupID)
	}
	if !members[params.PaidBy] {
		return nil, nil, fmt.Errorf("%w: payer %s in group %s", ErrNotGroupMember, params.PaidBy, params.GroupID)
	}
	for _, p := range params.Participants {
		if !members[p] {
			return nil, nil, fmt.Errorf("%w: participant %s in group %s", ErrNotGroupMember, p, params.GroupID)
		}
	}

	shares, err := ledger.AllocateSplit(params.Amount, params.Method, params.Participants, params.SplitParams)
	if err != nil {
		return nil, nil, err
	}

	expense := &models.Expense{
		GroupID:     params.GroupID,
		PaidBy:      params.PaidBy,
		Amount:      params.Amount,
		Description: params.Description,
		Category:    params.Category,
		SpentAt:     params.SpentAt,
		CreatedBy:   userID,
	}
	if expense.Category == "" {
		expense.Category = "general"
	}

	splits := make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.ExpenseSplit{MemberKey: share.MemberKey, Amount: share.Amount}
	}

	if err := s.store.CreateExpenseWithSplits(ctx, expense, splits); err != nil {
		slog.Error("failed to create expense", "group_id", params.GroupID, "error", err)
		return nil, nil, err
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"method", params.Method,
		"participants", len(splits),
	)
	return expense, splits, nil
}

// ListGroup returns a group's expenses, newest first. The acting user
// must be a member.
func (s *ExpenseService) ListGroup(ctx context.Context, userID, groupID string) ([]models.Expense, error) {
	members, err := memberSet(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if !members[userID] {
		return nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, groupID)
	}
	return s.store.ListGroupExpenses(ctx, groupID)
}

// RecentActivity returns the user's most recent expenses across all their
// groups (paid by them or split with them).
func (s *ExpenseService) RecentActivity(ctx context.Context, userID string, limit int) ([]models.Expense, error) {
	return s.store.ListMemberExpenses(ctx, userID, limit)
}

// memberSet loads a group's member keys as a lookup set.
func memberSet(ctx context.Context, store storage.Store, groupID string) (map[string]bool, error) {
	members, err := store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m.Key] = true
	}
	return set, nil
}
