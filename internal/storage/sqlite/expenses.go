package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sharveena123/paypals/internal/models"
)

// CreateExpenseWithSplits persists an expense together with its splits as
// one transaction. An expense must never exist without splits, so any
// failure rolls back the whole write.
func (s *SQLiteStore) CreateExpenseWithSplits(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error {
	if len(splits) == 0 {
		return fmt.Errorf("expense requires at least one split")
	}
	var sum int64
	for _, sp := range splits {
		sum += sp.Amount
	}
	if sum != expense.Amount {
		return fmt.Errorf("splits sum to %d, expense amount is %d", sum, expense.Amount)
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.SpentAt == 0 {
		expense.SpentAt = expense.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, paid_by, amount, description, category, spent_at, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.PaidBy, expense.Amount,
		expense.Description, expense.Category, expense.SpentAt, expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range splits {
		splits[i].ExpenseID = expense.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_key, amount) VALUES (?, ?, ?)",
			splits[i].ExpenseID, splits[i].MemberKey, splits[i].Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListGroupExpenses retrieves all expenses of a group, newest first.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, paid_by, amount, description, category, spent_at, created_at, created_by
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
}

// ListMemberExpenses retrieves the most recent expenses paid by or split
// with the member across all groups. limit <= 0 means no limit.
func (s *SQLiteStore) ListMemberExpenses(ctx context.Context, memberKey string, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats negative LIMIT as unlimited
	}
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id, e.group_id, e.paid_by, e.amount, e.description, e.category, e.spent_at, e.created_at, e.created_by
		 FROM expenses e
		 LEFT JOIN expense_splits sp ON sp.expense_id = e.id
		 WHERE e.paid_by = ? OR sp.member_key = ?
		 ORDER BY e.created_at DESC, e.id
		 LIMIT ?`,
		memberKey, memberKey, limit,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.GroupID, &e.PaidBy, &e.Amount,
			&e.Description, &e.Category, &e.SpentAt, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// ListGroupSplits retrieves every split belonging to a group's expenses.
func (s *SQLiteStore) ListGroupSplits(ctx context.Context, groupID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.expense_id, sp.member_key, sp.amount
		 FROM expense_splits sp
		 JOIN expenses e ON e.id = sp.expense_id
		 WHERE e.group_id = ?
		 ORDER BY sp.expense_id, sp.member_key`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var sp models.ExpenseSplit
		if err := rows.Scan(&sp.ExpenseID, &sp.MemberKey, &sp.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}
