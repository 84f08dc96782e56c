package model

import "time"

// Portfolio is the single shared ledger aggregate: running totals of gold
// held and capital invested, plus the append-only trade history in
// submission order (not sorted by trade date).
//
// TotalInvestment is the cost basis of the gold currently held, reduced
// proportionally on partial sales (average-cost approximation, not lot
// accounting).
type Portfolio struct {
	TotalGrams      float64 `json:"totalGrams"`
	TotalInvestment float64 `json:"totalInvestment"`
	Transactions    []Trade `json:"transactions"`
}

// PortfolioSummary represents the current state of the portfolio, valued
// against today's rate when one is available.
type PortfolioSummary struct {
	TotalGrams      float64          `json:"totalGrams"`
	TotalInvestment float64          `json:"totalInvestment"`
	CurrentValue    float64          `json:"currentValue"`
	ProfitLoss      float64          `json:"profitLoss"`
	AmountDrawn     float64          `json:"amountDrawn"`
	CurrentRate     *RateObservation `json:"currentRate,omitempty"`
	Transactions    []Trade          `json:"transactions"`
}

// ValuationSnapshot is a pre-calculated portfolio valuation for a single
// date, materialized by the daily snapshot job for fast history retrieval.
type ValuationSnapshot struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Rate            float64   `json:"rate"`
	TotalGrams      float64   `json:"totalGrams"`
	TotalInvestment float64   `json:"totalInvestment"`
	CurrentValue    float64   `json:"currentValue"`
	ProfitLoss      float64   `json:"profitLoss"`
	CalculatedAt    time.Time `json:"calculatedAt"`
}
