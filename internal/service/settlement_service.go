package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
)

// SettlementService records payments between members.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlementParams are the inputs for Create. Amount is in cents.
type CreateSettlementParams struct {
	GroupID    string
	FromMember string
	ToMember   string
	Amount     int64
	Note       string
	// Pending leaves the settlement awaiting confirmation instead of
	// completing it immediately. Pending settlements do not affect
	// balances until completed.
	Pending bool
}

// Create records a settlement between two members of a group the acting
// user belongs to.
func (s *SettlementService) Create(ctx context.Context, userID string, params CreateSettlementParams) (*models.Settlement, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: settlement amount must be positive", ErrInvalidInput)
	}
	if params.FromMember == params.ToMember {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrInvalidInput)
	}

	members, err := memberSet(ctx, s.store, params.GroupID)
	if err != nil {
		return nil, err
	}
	if !members[userID] {
		return nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, params.GroupID)
	}
	if !members[params.FromMember] {
		return nil, fmt.Errorf("%w: payer %s in group %s", ErrNotGroupMember, params.FromMember, params.GroupID)
	}
	if !members[params.ToMember] {
		return nil, fmt.Errorf("%w: payee %s in group %s", ErrNotGroupMember, params.ToMember, params.GroupID)
	}

	settlement := &models.Settlement{
		GroupID:    params.GroupID,
		FromMember: params.FromMember,
		ToMember:   params.ToMember,
		Amount:     params.Amount,
		Note:       params.Note,
		Status:     models.SettlementCompleted,
		SettledAt:  time.Now().Unix(),
		CreatedBy:  userID,
	}
	if params.Pending {
		settlement.Status = models.SettlementPending
		settlement.SettledAt = 0
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("failed to create settlement", "group_id", params.GroupID, "error", err)
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount,
		"status", settlement.Status,
	)
	return settlement, nil
}

// Complete transitions a pending settlement to completed, making it count
// against the pair's balance.
func (s *SettlementService) Complete(ctx context.Context, userID, settlementID string) (*models.Settlement, error) {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	members, err := memberSet(ctx, s.store, settlement.GroupID)
	if err != nil {
		return nil, err
	}
	if !members[userID] {
		return nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, settlement.GroupID)
	}

	if err := s.store.CompleteSettlement(ctx, settlementID, time.Now().Unix()); err != nil {
		return nil, err
	}

	slog.Info("settlement completed", "settlement_id", settlementID, "user_id", userID)
	return s.store.GetSettlement(ctx, settlementID)
}

// ListGroup returns a group's settlements, newest first.
func (s *SettlementService) ListGroup(ctx context.Context, userID, groupID string) ([]models.Settlement, error) {
	members, err := memberSet(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if !members[userID] {
		return nil, fmt.Errorf("%w: %s in group %s", ErrNotGroupMember, userID, groupID)
	}
	return s.store.ListGroupSettlements(ctx, groupID)
}
