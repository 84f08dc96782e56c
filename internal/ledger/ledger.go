// Package ledger implements the portfolio accounting rules: applying one
// buy or sell trade to the current portfolio aggregate and the pure queries
// derived from it.
//
// Cost basis uses proportional (average-cost) reduction on partial sales.
// This does not track lots, so it is exact only when all prior buys were at
// a uniform price; it silently diverges from FIFO/LIFO lot accounting once
// buys occur at varying prices.
package ledger

import (
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// TradeRequest describes one buy or sell against a priced date. Exactly one
// of Amount or Grams is supplied by the caller; the other is derived from
// Rate, which is the rate snapshotted from the priced date (not the current
// day's rate).
type TradeRequest struct {
	Date   string
	Kind   string // buy or sell
	Rate   float64
	Amount float64
	Grams  float64
}

// ApplyTrade applies one trade to the current portfolio state and returns
// the next state plus the appended trade. It is pure: the input state is
// never mutated, and all failures are reported before any change, so a
// returned error always leaves the caller's state untouched.
//
// The trade's ID is left empty for the caller to assign.
func ApplyTrade(state model.Portfolio, req TradeRequest, now time.Time) (model.Portfolio, model.Trade, error) {
	if req.Rate <= 0 {
		return state, model.Trade{}, apperrors.ErrInvalidRate
	}
	if req.Kind != model.TradeKindBuy && req.Kind != model.TradeKindSell {
		return state, model.Trade{}, apperrors.ErrInvalidKind
	}

	// Resolve grams and amount from whichever of the two was supplied.
	var grams, amount float64
	switch {
	case req.Amount > 0:
		amount = req.Amount
		grams = amount / req.Rate
	case req.Grams > 0:
		grams = req.Grams
		amount = grams * req.Rate
	default:
		return state, model.Trade{}, apperrors.ErrInvalidInput
	}

	// A date with a recorded trade is settled.
	if _, ok := TransactionForDate(state.Transactions, req.Date); ok {
		return state, model.Trade{}, apperrors.ErrDateAlreadyTraded
	}

	next := model.Portfolio{
		TotalGrams:      state.TotalGrams,
		TotalInvestment: state.TotalInvestment,
	}

	switch req.Kind {
	case model.TradeKindBuy:
		next.TotalGrams += grams
		next.TotalInvestment += amount
	case model.TradeKindSell:
		if grams > state.TotalGrams {
			return state, model.Trade{}, apperrors.ErrInsufficientBalance
		}
		next.TotalGrams -= grams
		if next.TotalGrams == 0 {
			// Full liquidation resets the cost basis regardless of rounding.
			next.TotalInvestment = 0
		} else {
			proportionSold := grams / state.TotalGrams
			next.TotalInvestment -= state.TotalInvestment * proportionSold
			if next.TotalInvestment < 0 {
				// Floating-point residue only; a sell can never extract more
				// basis than is invested.
				next.TotalInvestment = 0
			}
		}
	}

	trade := model.Trade{
		Date:       req.Date,
		Kind:       req.Kind,
		Grams:      grams,
		Amount:     amount,
		Rate:       req.Rate,
		RecordedAt: now,
	}

	next.Transactions = make([]model.Trade, 0, len(state.Transactions)+1)
	next.Transactions = append(next.Transactions, state.Transactions...)
	next.Transactions = append(next.Transactions, trade)

	return next, trade, nil
}

// CurrentValue returns the market value of the held gold at today's rate.
// Returns 0 when nothing is held or no rate is available.
func CurrentValue(state model.Portfolio, todayRate float64) float64 {
	if state.TotalGrams == 0 || todayRate <= 0 {
		return 0
	}
	return state.TotalGrams * todayRate
}

// ProfitLoss returns current value minus cost basis. It is exactly 0 when
// nothing is held, even if TotalInvestment carries rounding residue.
func ProfitLoss(state model.Portfolio, todayRate float64) float64 {
	if state.TotalGrams == 0 {
		return 0
	}
	return CurrentValue(state, todayRate) - state.TotalInvestment
}

// AmountDrawn returns the net cash extracted from the portfolio: the sum of
// all sell amounts minus the sum of all buy amounts. Positive when
// cumulative sells exceed cumulative buys.
func AmountDrawn(transactions []model.Trade) float64 {
	var bought, sold float64
	for _, t := range transactions {
		switch t.Kind {
		case model.TradeKindBuy:
			bought += t.Amount
		case model.TradeKindSell:
			sold += t.Amount
		}
	}
	return sold - bought
}

// TransactionForDate returns the first transaction priced against the given
// date, if any.
func TransactionForDate(transactions []model.Trade, date string) (model.Trade, bool) {
	for _, t := range transactions {
		if t.Date == date {
			return t, true
		}
	}
	return model.Trade{}, false
}
