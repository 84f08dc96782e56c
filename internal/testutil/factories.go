package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// MakeID generates a unique ID for test entities.
func MakeID() string {
	return uuid.New().String()
}

// RateBuilder provides a fluent interface for creating test rate observations.
//
// Example usage:
//
//	// Simple creation with defaults
//	rate := testutil.NewRate("2025-08-30").Build(t, db)
//
//	// Customized observation
//	rate := testutil.NewRate("2025-08-30").WithRate(7450.50).Build(t, db)
type RateBuilder struct {
	Date       string
	Rate       float64
	RecordedAt time.Time
}

// NewRate creates a RateBuilder for the given YYYY-MM-DD date with a
// default rate.
func NewRate(date string) *RateBuilder {
	return &RateBuilder{
		Date:       date,
		Rate:       5000,
		RecordedAt: time.Now().UTC(),
	}
}

// WithRate sets a custom rate.
func (b *RateBuilder) WithRate(rate float64) *RateBuilder {
	b.Rate = rate
	return b
}

// Build inserts the observation and returns the model.
func (b *RateBuilder) Build(t *testing.T, db *sql.DB) model.RateObservation {
	t.Helper()

	dateKey := strings.ReplaceAll(b.Date, "-", "")
	_, err := db.Exec(
		`INSERT INTO gold_rate (date_key, date, rate, recorded_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date_key) DO UPDATE SET rate = excluded.rate, recorded_at = excluded.recorded_at`,
		dateKey, b.Date, b.Rate, b.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test rate: %v", err)
	}

	return model.RateObservation{Date: b.Date, Rate: b.Rate, RecordedAt: b.RecordedAt}
}

// TradeBuilder provides a fluent interface for creating test trades.
// Build appends the trade and does not touch the portfolio totals; combine
// with SeedPortfolio when a consistent aggregate matters.
type TradeBuilder struct {
	ID         string
	Date       string
	Kind       string
	Grams      float64
	Amount     float64
	Rate       float64
	RecordedAt time.Time
}

// NewTrade creates a TradeBuilder for the given YYYY-MM-DD date with
// buy defaults.
func NewTrade(date string) *TradeBuilder {
	return &TradeBuilder{
		ID:         MakeID(),
		Date:       date,
		Kind:       model.TradeKindBuy,
		Grams:      10,
		Amount:     50000,
		Rate:       5000,
		RecordedAt: time.Now().UTC(),
	}
}

// WithKind sets the trade kind.
func (b *TradeBuilder) WithKind(kind string) *TradeBuilder {
	b.Kind = kind
	return b
}

// WithGrams sets grams and recomputes amount from the rate.
func (b *TradeBuilder) WithGrams(grams float64) *TradeBuilder {
	b.Grams = grams
	b.Amount = grams * b.Rate
	return b
}

// WithRate sets the snapshotted rate and recomputes amount.
func (b *TradeBuilder) WithRate(rate float64) *TradeBuilder {
	b.Rate = rate
	b.Amount = b.Grams * rate
	return b
}

// Build inserts the trade at the next position and returns the model.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO trade (id, position, date, kind, grams, amount, rate, recorded_at)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM trade), ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Date, b.Kind, b.Grams, b.Amount, b.Rate, b.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return model.Trade{
		ID: b.ID, Date: b.Date, Kind: b.Kind,
		Grams: b.Grams, Amount: b.Amount, Rate: b.Rate, RecordedAt: b.RecordedAt,
	}
}

// SeedPortfolio sets the aggregate totals directly.
func SeedPortfolio(t *testing.T, db *sql.DB, totalGrams, totalInvestment float64) {
	t.Helper()

	_, err := db.Exec(
		`UPDATE portfolio SET total_grams = ?, total_investment = ?, updated_at = ? WHERE id = 1`,
		totalGrams, totalInvestment, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to seed portfolio: %v", err)
	}
}
