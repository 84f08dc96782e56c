// Package scheduler wires the daily background jobs: fetching today's rate
// from the configured provider and materializing the valuation snapshot.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/service"
)

// Scheduler runs the daily jobs on a cron spec.
type Scheduler struct {
	cron            *cron.Cron
	providerService *service.ProviderService
	snapshotService *service.SnapshotService
}

// New creates a Scheduler with the given cron spec (standard five-field
// syntax). The job fetches from the provider when one is configured, then
// records the daily valuation snapshot.
func New(spec string, providerService *service.ProviderService, snapshotService *service.SnapshotService) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		providerService: providerService,
		snapshotService: snapshotService,
	}

	if _, err := s.cron.AddFunc(spec, s.runDaily); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.providerService.FetchToday(ctx); err != nil {
		if errors.Is(err, apperrors.ErrProviderNotConfigured) {
			log.Printf("daily fetch skipped: no provider configured")
		} else {
			log.Printf("daily fetch failed: %v", err)
		}
	}

	snapshot, err := s.snapshotService.RecordDaily(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			log.Printf("daily snapshot skipped: no rate recorded for today")
		} else {
			log.Printf("daily snapshot failed: %v", err)
		}
		return
	}

	log.Printf("daily snapshot recorded for %s (value %.2f)", snapshot.Date, snapshot.CurrentValue)
}
