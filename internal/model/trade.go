package model

import "time"

// Trade kinds.
const (
	TradeKindBuy  = "buy"
	TradeKindSell = "sell"
)

// Trade is an immutable record of one buy or sell action. The rate is
// snapshotted from the observation the trade was priced against and never
// changes, even if that observation is later overwritten.
// Invariant: Amount == Grams * Rate at creation time, within rounding tolerance.
type Trade struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"` // the RateObservation date the trade is priced against
	Kind       string    `json:"kind"` // buy or sell
	Grams      float64   `json:"grams"`
	Amount     float64   `json:"amount"`
	Rate       float64   `json:"rate"`
	RecordedAt time.Time `json:"recordedAt"`
}
