package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/ledger"
	"github.com/jaidev/gold-tracker-backend/internal/model"
	"github.com/jaidev/gold-tracker-backend/internal/repository"
	"github.com/jaidev/gold-tracker-backend/internal/stream"
	"github.com/jaidev/gold-tracker-backend/internal/validation"
)

// PortfolioService handles trade submission and portfolio queries.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	rateRepo      *repository.RateRepository
	snapshotRepo  *repository.SnapshotRepository
	hub           *stream.Hub
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	rateRepo *repository.RateRepository,
	snapshotRepo *repository.SnapshotRepository,
	hub *stream.Hub,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		rateRepo:      rateRepo,
		snapshotRepo:  snapshotRepo,
		hub:           hub,
	}
}

// SubmitTrade applies one buy or sell priced against the observation
// recorded for the request's date. The rate is snapshotted from that
// observation at trade time, not the current day's rate. The read of the
// aggregate, the ledger application, and both writes happen in one database
// transaction; a failed trade persists nothing.
func (s *PortfolioService) SubmitTrade(ctx context.Context, req request.SubmitTradeRequest) (*model.Trade, error) {
	normalized, err := validation.NormalizeDate(req.Date)
	if err != nil {
		return nil, err
	}

	observation, err := s.rateRepo.GetRateByDate(normalized)
	if err != nil {
		return nil, err
	}

	tradeReq := ledger.TradeRequest{
		Date: normalized,
		Kind: req.Kind,
		Rate: observation.Rate,
	}
	if req.Amount != nil {
		tradeReq.Amount = *req.Amount
	}
	if req.Grams != nil {
		tradeReq.Grams = *req.Grams
	}

	portfolio, trade, err := s.portfolioRepo.SubmitTrade(ctx, func(current model.Portfolio) (model.Portfolio, model.Trade, error) {
		next, trade, err := ledger.ApplyTrade(current, tradeReq, time.Now().UTC())
		if err != nil {
			return model.Portfolio{}, model.Trade{}, err
		}
		trade.ID = uuid.New().String()
		next.Transactions[len(next.Transactions)-1].ID = trade.ID
		return next, trade, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishPortfolio(portfolio)

	return &trade, nil
}

// GetSummary returns the portfolio totals together with the derived
// valuation figures. When today has no recorded rate, current value and
// profit/loss are zero and no current rate is attached.
func (s *PortfolioService) GetSummary() (*model.PortfolioSummary, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio()
	if err != nil {
		return nil, err
	}

	summary := &model.PortfolioSummary{
		TotalGrams:      portfolio.TotalGrams,
		TotalInvestment: portfolio.TotalInvestment,
		AmountDrawn:     ledger.AmountDrawn(portfolio.Transactions),
		Transactions:    portfolio.Transactions,
	}

	today := time.Now().UTC().Format("2006-01-02")
	observation, err := s.rateRepo.GetRateByDate(today)
	switch {
	case err == nil:
		summary.CurrentRate = &observation
		summary.CurrentValue = ledger.CurrentValue(portfolio, observation.Rate)
		summary.ProfitLoss = ledger.ProfitLoss(portfolio, observation.Rate)
	case errors.Is(err, apperrors.ErrRateNotFound):
		// No observation for today; valuation stays zero.
	default:
		return nil, err
	}

	return summary, nil
}

// GetTransactions returns the full trade history in submission order.
func (s *PortfolioService) GetTransactions() ([]model.Trade, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio()
	if err != nil {
		return nil, err
	}
	return portfolio.Transactions, nil
}

// ValuationHistory returns the materialized daily valuations sorted by date.
func (s *PortfolioService) ValuationHistory() ([]model.ValuationSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("failed to list valuation snapshots: %w", err)
	}
	return snapshots, nil
}

// PublishCurrent pushes the stored aggregate to the hub so subscribers
// connected before the first trade still receive state. Used at startup.
func (s *PortfolioService) PublishCurrent() error {
	portfolio, err := s.portfolioRepo.GetPortfolio()
	if err != nil {
		return err
	}
	s.publishPortfolio(portfolio)
	return nil
}

// publishPortfolio pushes the full aggregate record to subscribers.
func (s *PortfolioService) publishPortfolio(portfolio model.Portfolio) {
	s.hub.Publish(stream.TopicPortfolio, portfolio)
}
