package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// SnapshotRepository provides data access methods for the valuation_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot writes the valuation for its date, overwriting any prior
// snapshot so the daily job is idempotent per date.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot *model.ValuationSnapshot) error {
	query := `
		INSERT INTO valuation_snapshot
			(id, date, rate, total_grams, total_investment, current_value, profit_loss, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			rate = excluded.rate,
			total_grams = excluded.total_grams,
			total_investment = excluded.total_investment,
			current_value = excluded.current_value,
			profit_loss = excluded.profit_loss,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Date,
		snapshot.Rate,
		snapshot.TotalGrams,
		snapshot.TotalInvestment,
		snapshot.CurrentValue,
		snapshot.ProfitLoss,
		snapshot.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert valuation snapshot: %w", err)
	}

	return nil
}

// ListSnapshots retrieves all valuation snapshots sorted by date ascending.
func (r *SnapshotRepository) ListSnapshots() ([]model.ValuationSnapshot, error) {
	query := `
		SELECT id, date, rate, total_grams, total_investment, current_value, profit_loss, calculated_at
		FROM valuation_snapshot
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.ValuationSnapshot{}

	for rows.Next() {
		var s model.ValuationSnapshot
		var calculatedAtStr string

		err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.Rate,
			&s.TotalGrams,
			&s.TotalInvestment,
			&s.CurrentValue,
			&s.ProfitLoss,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation_snapshot table results: %w", err)
		}

		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuation_snapshot table: %w", err)
	}

	return snapshots, nil
}
