package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaidev/gold-tracker-backend/internal/ledger"
	"github.com/jaidev/gold-tracker-backend/internal/model"
	"github.com/jaidev/gold-tracker-backend/internal/repository"
)

// SnapshotService materializes daily portfolio valuations so the history
// chart reads from pre-calculated rows instead of replaying trades.
type SnapshotService struct {
	snapshotRepo  *repository.SnapshotRepository
	portfolioRepo *repository.PortfolioRepository
	rateRepo      *repository.RateRepository
}

// NewSnapshotService creates a new SnapshotService with the provided repository dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	portfolioRepo *repository.PortfolioRepository,
	rateRepo *repository.RateRepository,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:  snapshotRepo,
		portfolioRepo: portfolioRepo,
		rateRepo:      rateRepo,
	}
}

// RecordDaily values the portfolio against today's observation and upserts
// the snapshot for today. Running it twice on the same date overwrites the
// earlier snapshot. Fails with apperrors.ErrRateNotFound when today has no
// recorded rate.
func (s *SnapshotService) RecordDaily(ctx context.Context) (*model.ValuationSnapshot, error) {
	today := time.Now().UTC().Format("2006-01-02")

	observation, err := s.rateRepo.GetRateByDate(today)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.GetPortfolio()
	if err != nil {
		return nil, err
	}

	snapshot := &model.ValuationSnapshot{
		ID:              uuid.New().String(),
		Date:            today,
		Rate:            observation.Rate,
		TotalGrams:      portfolio.TotalGrams,
		TotalInvestment: portfolio.TotalInvestment,
		CurrentValue:    ledger.CurrentValue(portfolio, observation.Rate),
		ProfitLoss:      ledger.ProfitLoss(portfolio, observation.Rate),
		CalculatedAt:    time.Now().UTC(),
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to record valuation snapshot: %w", err)
	}

	return snapshot, nil
}
