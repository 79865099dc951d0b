package sqlite

import (
	"context"
	"fmt"

	"github.com/sharveena123/paypals/internal/storage"
)

// CategoryTotals aggregates the member's split amounts by expense
// category, largest first. The member's own share is what they spent, so
// the aggregation runs over splits rather than whole expenses.
func (s *SQLiteStore) CategoryTotals(ctx context.Context, memberKey string) ([]storage.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.category, SUM(sp.amount)
		 FROM expense_splits sp
		 JOIN expenses e ON e.id = sp.expense_id
		 WHERE sp.member_key = ?
		 GROUP BY e.category
		 ORDER BY SUM(sp.amount) DESC, e.category`,
		memberKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer rows.Close()

	var totals []storage.CategoryTotal
	for rows.Next() {
		var ct storage.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}

	return totals, nil
}
