package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// PortfolioRepository provides data access methods for the single portfolio
// aggregate and its append-only trade history.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx so portfolio loading
// works inside and outside a transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// GetPortfolio loads the aggregate: running totals plus the full trade
// history in submission order.
func (r *PortfolioRepository) GetPortfolio() (model.Portfolio, error) {
	return loadPortfolio(r.db)
}

// SubmitTrade runs apply against the current aggregate inside a single
// database transaction and persists the result. The transaction serializes
// concurrent submissions, so the read-modify-write of the aggregate cannot
// lose an update. If apply fails, nothing is persisted.
func (r *PortfolioRepository) SubmitTrade(
	ctx context.Context,
	apply func(model.Portfolio) (model.Portfolio, model.Trade, error),
) (model.Portfolio, model.Trade, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Portfolio{}, model.Trade{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	current, err := loadPortfolio(tx)
	if err != nil {
		return model.Portfolio{}, model.Trade{}, err
	}

	next, trade, err := apply(current)
	if err != nil {
		return model.Portfolio{}, model.Trade{}, err
	}

	_, err = tx.Exec(
		`UPDATE portfolio SET total_grams = ?, total_investment = ?, updated_at = ? WHERE id = 1`,
		next.TotalGrams,
		next.TotalInvestment,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return model.Portfolio{}, model.Trade{}, fmt.Errorf("failed to update portfolio: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO trade (id, position, date, kind, grams, amount, rate, recorded_at)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM trade), ?, ?, ?, ?, ?, ?)`,
		trade.ID,
		trade.Date,
		trade.Kind,
		trade.Grams,
		trade.Amount,
		trade.Rate,
		trade.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return model.Portfolio{}, model.Trade{}, fmt.Errorf("failed to insert trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Portfolio{}, model.Trade{}, fmt.Errorf("failed to commit trade: %w", err)
	}

	return next, trade, nil
}

func loadPortfolio(q querier) (model.Portfolio, error) {
	var portfolio model.Portfolio

	err := q.QueryRow(`SELECT total_grams, total_investment FROM portfolio WHERE id = 1`).
		Scan(&portfolio.TotalGrams, &portfolio.TotalInvestment)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	rows, err := q.Query(`
		SELECT id, date, kind, grams, amount, rate, recorded_at
		FROM trade
		ORDER BY position ASC
	`)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	portfolio.Transactions = []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var recordedAtStr string

		err := rows.Scan(&t.ID, &t.Date, &t.Kind, &t.Grams, &t.Amount, &t.Rate, &recordedAtStr)
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.RecordedAt, err = ParseTime(recordedAtStr)
		if err != nil {
			return model.Portfolio{}, err
		}

		portfolio.Transactions = append(portfolio.Transactions, t)
	}

	if err = rows.Err(); err != nil {
		return model.Portfolio{}, fmt.Errorf("error iterating trade table: %w", err)
	}

	return portfolio, nil
}
