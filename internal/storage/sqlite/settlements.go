package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementPending
	}

	var note any
	if settlement.Note != "" {
		note = settlement.Note
	}
	var settledAt any
	if settlement.SettledAt != 0 {
		settledAt = settlement.SettledAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_member, to_member, amount, status, note, created_at, settled_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.FromMember, settlement.ToMember,
		settlement.Amount, settlement.Status, note, settlement.CreatedAt, settledAt, settlement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, from_member, to_member, amount, status, note, created_at, settled_at, created_by
		 FROM settlements WHERE id = ?`,
		settlementID,
	)

	settlement, err := scanSettlement(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return settlement, nil
}

// ListGroupSettlements retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListGroupSettlements(ctx context.Context, groupID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_member, to_member, amount, status, note, created_at, settled_at, created_by
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, *settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// CompleteSettlement transitions a pending settlement to completed.
// Completing an already-completed settlement is an error.
func (s *SQLiteStore) CompleteSettlement(ctx context.Context, settlementID string, settledAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET status = ?, settled_at = ? WHERE id = ? AND status = ?",
		models.SettlementCompleted, settledAt, settlementID, models.SettlementPending,
	)
	if err != nil {
		return fmt.Errorf("failed to complete settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: pending settlement %s", storage.ErrNotFound, settlementID)
	}
	return nil
}

func scanSettlement(scan func(dest ...any) error) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note sql.NullString
	var settledAt sql.NullInt64

	err := scan(&settlement.ID, &settlement.GroupID, &settlement.FromMember, &settlement.ToMember,
		&settlement.Amount, &settlement.Status, &note, &settlement.CreatedAt, &settledAt, &settlement.CreatedBy)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		settlement.Note = note.String
	}
	if settledAt.Valid {
		settlement.SettledAt = settledAt.Int64
	}

	return settlement, nil
}
