// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/sharveena123/paypals/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// CategoryTotal is a per-category aggregate of a user's spending.
type CategoryTotal struct {
	Category string
	Amount   int64
}

// Store defines the interface for record persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups and membership.
	CreateGroup(ctx context.Context, group *models.Group, members []models.Member) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, memberKey string) ([]*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, member *models.Member) error
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// Expenses. CreateExpenseWithSplits commits the expense and its splits
	// as one transaction: either both land or neither does.
	CreateExpenseWithSplits(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)
	ListGroupSplits(ctx context.Context, groupID string) ([]models.ExpenseSplit, error)
	ListMemberExpenses(ctx context.Context, memberKey string, limit int) ([]models.Expense, error)

	// Settlements.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListGroupSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)
	CompleteSettlement(ctx context.Context, settlementID string, settledAt int64) error

	// Reports.
	CategoryTotals(ctx context.Context, memberKey string) ([]CategoryTotal, error)

	// Close releases any resources held by the store.
	Close() error
}
