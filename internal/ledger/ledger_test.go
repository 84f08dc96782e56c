package ledger

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/model"
)

var testNow = time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestApplyTrade_Buy(t *testing.T) {
	t.Run("adds grams and amount to running totals", func(t *testing.T) {
		state := model.Portfolio{}

		next, trade, err := ApplyTrade(state, TradeRequest{
			Date: "2025-08-01", Kind: "buy", Rate: 5000, Grams: 10,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if next.TotalGrams != 10 {
			t.Errorf("Expected 10 grams, got %v", next.TotalGrams)
		}
		if next.TotalInvestment != 50000 {
			t.Errorf("Expected investment 50000, got %v", next.TotalInvestment)
		}
		if trade.Amount != 50000 || trade.Grams != 10 || trade.Rate != 5000 {
			t.Errorf("Unexpected trade %+v", trade)
		}
	})

	t.Run("derives grams when amount is supplied", func(t *testing.T) {
		next, trade, err := ApplyTrade(model.Portfolio{}, TradeRequest{
			Date: "2025-08-01", Kind: "buy", Rate: 5000, Amount: 25000,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !almostEqual(trade.Grams, 5) {
			t.Errorf("Expected 5 grams, got %v", trade.Grams)
		}
		if !almostEqual(next.TotalGrams, 5) {
			t.Errorf("Expected total 5 grams, got %v", next.TotalGrams)
		}
	})

	t.Run("amount equals grams times rate", func(t *testing.T) {
		_, trade, err := ApplyTrade(model.Portfolio{}, TradeRequest{
			Date: "2025-08-01", Kind: "buy", Rate: 7321.55, Grams: 3.25,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !almostEqual(trade.Amount, 3.25*7321.55) {
			t.Errorf("Expected amount %v, got %v", 3.25*7321.55, trade.Amount)
		}
	})

	t.Run("appends the trade in submission order", func(t *testing.T) {
		state := model.Portfolio{Transactions: []model.Trade{
			{Date: "2025-08-01", Kind: "buy", Grams: 1, Amount: 5000, Rate: 5000},
		}}

		next, _, err := ApplyTrade(state, TradeRequest{
			// Earlier calendar date submitted later stays last in the history.
			Date: "2025-07-15", Kind: "buy", Rate: 4800, Grams: 2,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(next.Transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(next.Transactions))
		}
		if next.Transactions[1].Date != "2025-07-15" {
			t.Errorf("Expected the new trade appended last, got %+v", next.Transactions)
		}
	})
}

func TestApplyTrade_Sell(t *testing.T) {
	t.Run("reduces cost basis proportionally", func(t *testing.T) {
		// Buy 10g at 5000 then sell 4g at 6000: proportion sold is 0.4, so
		// investment drops from 50000 to 30000.
		state := model.Portfolio{TotalGrams: 10, TotalInvestment: 50000}

		next, trade, err := ApplyTrade(state, TradeRequest{
			Date: "2025-08-02", Kind: "sell", Rate: 6000, Grams: 4,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !almostEqual(trade.Amount, 24000) {
			t.Errorf("Expected amount 24000, got %v", trade.Amount)
		}
		if !almostEqual(next.TotalGrams, 6) {
			t.Errorf("Expected 6 grams, got %v", next.TotalGrams)
		}
		if !almostEqual(next.TotalInvestment, 30000) {
			t.Errorf("Expected investment 30000, got %v", next.TotalInvestment)
		}
	})

	t.Run("full liquidation resets investment to exactly zero", func(t *testing.T) {
		// Non-round investment confirms the explicit reset branch rather
		// than the generic proportional arithmetic.
		state := model.Portfolio{TotalGrams: 6, TotalInvestment: 29999.999999}

		next, _, err := ApplyTrade(state, TradeRequest{
			Date: "2025-08-03", Kind: "sell", Rate: 7000, Grams: 6,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if next.TotalGrams != 0 {
			t.Errorf("Expected 0 grams, got %v", next.TotalGrams)
		}
		if next.TotalInvestment != 0 {
			t.Errorf("Expected investment exactly 0, got %v", next.TotalInvestment)
		}
	})

	t.Run("rejects sell exceeding holdings and leaves state unchanged", func(t *testing.T) {
		state := model.Portfolio{TotalGrams: 2, TotalInvestment: 10000}

		next, _, err := ApplyTrade(state, TradeRequest{
			Date: "2025-08-04", Kind: "sell", Rate: 6000, Grams: 3,
		}, testNow)
		if !errors.Is(err, apperrors.ErrInsufficientBalance) {
			t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
		}

		if next.TotalGrams != 2 || next.TotalInvestment != 10000 {
			t.Errorf("Expected state unchanged, got %+v", next)
		}
	})

	t.Run("clamps negative investment residue to zero", func(t *testing.T) {
		// Crafted so the proportional reduction overshoots by a hair.
		state := model.Portfolio{TotalGrams: 0.3, TotalInvestment: 1e-15}

		next, _, err := ApplyTrade(state, TradeRequest{
			Date: "2025-08-05", Kind: "sell", Rate: 6000, Grams: 0.2,
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if next.TotalInvestment < 0 {
			t.Errorf("Expected non-negative investment, got %v", next.TotalInvestment)
		}
	})
}

func TestApplyTrade_Validation(t *testing.T) {
	tests := []struct {
		name    string
		state   model.Portfolio
		req     TradeRequest
		wantErr error
	}{
		{
			name:    "rejects non-positive rate",
			req:     TradeRequest{Date: "2025-08-01", Kind: "buy", Rate: 0, Grams: 1},
			wantErr: apperrors.ErrInvalidRate,
		},
		{
			name:    "rejects missing amount and grams",
			req:     TradeRequest{Date: "2025-08-01", Kind: "buy", Rate: 5000},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "rejects negative grams",
			req:     TradeRequest{Date: "2025-08-01", Kind: "buy", Rate: 5000, Grams: -1},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "rejects unknown kind",
			req:     TradeRequest{Date: "2025-08-01", Kind: "short", Rate: 5000, Grams: 1},
			wantErr: apperrors.ErrInvalidKind,
		},
		{
			name: "rejects a second trade on a settled date",
			state: model.Portfolio{TotalGrams: 1, TotalInvestment: 5000, Transactions: []model.Trade{
				{Date: "2025-08-01", Kind: "buy", Grams: 1, Amount: 5000, Rate: 5000},
			}},
			req:     TradeRequest{Date: "2025-08-01", Kind: "sell", Rate: 5000, Grams: 1},
			wantErr: apperrors.ErrDateAlreadyTraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ApplyTrade(tt.state, tt.req, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCurrentValue(t *testing.T) {
	state := model.Portfolio{TotalGrams: 6, TotalInvestment: 30000}

	if got := CurrentValue(state, 7000); !almostEqual(got, 42000) {
		t.Errorf("Expected 42000, got %v", got)
	}
	if got := CurrentValue(model.Portfolio{}, 7000); got != 0 {
		t.Errorf("Expected 0 with no holdings, got %v", got)
	}
	if got := CurrentValue(state, 0); got != 0 {
		t.Errorf("Expected 0 with no rate, got %v", got)
	}
}

func TestProfitLoss(t *testing.T) {
	t.Run("current value minus investment", func(t *testing.T) {
		state := model.Portfolio{TotalGrams: 6, TotalInvestment: 30000}
		if got := ProfitLoss(state, 7000); !almostEqual(got, 12000) {
			t.Errorf("Expected 12000, got %v", got)
		}
	})

	t.Run("exactly zero without holdings even with rounding residue", func(t *testing.T) {
		state := model.Portfolio{TotalGrams: 0, TotalInvestment: 0.000001}
		if got := ProfitLoss(state, 7000); got != 0 {
			t.Errorf("Expected exactly 0, got %v", got)
		}
	})
}

func TestAmountDrawn(t *testing.T) {
	t.Run("empty sequence is zero", func(t *testing.T) {
		if got := AmountDrawn(nil); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})

	t.Run("sells minus buys", func(t *testing.T) {
		transactions := []model.Trade{
			{Kind: "buy", Amount: 50000},
			{Kind: "sell", Amount: 24000},
			{Kind: "sell", Amount: 42000},
			{Kind: "buy", Amount: 10000},
		}
		if got := AmountDrawn(transactions); !almostEqual(got, 6000) {
			t.Errorf("Expected 6000, got %v", got)
		}
	})
}

func TestTransactionForDate(t *testing.T) {
	transactions := []model.Trade{
		{ID: "a", Date: "2025-08-01", Kind: "buy"},
		{ID: "b", Date: "2025-08-02", Kind: "sell"},
	}

	if tx, ok := TransactionForDate(transactions, "2025-08-02"); !ok || tx.ID != "b" {
		t.Errorf("Expected trade b, got %+v ok=%v", tx, ok)
	}
	if _, ok := TransactionForDate(transactions, "2025-08-03"); ok {
		t.Error("Expected no trade for an untraded date")
	}
}

func TestApplyTrade_WorkedExample(t *testing.T) {
	// Buy 10g at 5000, sell 4g at 6000, sell the remaining 6g at 7000.
	state := model.Portfolio{}

	state, _, err := ApplyTrade(state, TradeRequest{Date: "2025-08-01", Kind: "buy", Rate: 5000, Grams: 10}, testNow)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if state.TotalGrams != 10 || state.TotalInvestment != 50000 {
		t.Fatalf("After buy: %+v", state)
	}

	state, _, err = ApplyTrade(state, TradeRequest{Date: "2025-08-02", Kind: "sell", Rate: 6000, Grams: 4}, testNow)
	if err != nil {
		t.Fatalf("first sell failed: %v", err)
	}
	if !almostEqual(state.TotalGrams, 6) || !almostEqual(state.TotalInvestment, 30000) {
		t.Fatalf("After first sell: %+v", state)
	}

	state, _, err = ApplyTrade(state, TradeRequest{Date: "2025-08-03", Kind: "sell", Rate: 7000, Grams: 6}, testNow)
	if err != nil {
		t.Fatalf("second sell failed: %v", err)
	}
	if state.TotalGrams != 0 || state.TotalInvestment != 0 {
		t.Fatalf("After liquidation: %+v", state)
	}

	if got := AmountDrawn(state.Transactions); !almostEqual(got, 24000+42000-50000) {
		t.Errorf("Expected amount drawn 16000, got %v", got)
	}
}
