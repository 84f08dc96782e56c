package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/model"
	"github.com/jaidev/gold-tracker-backend/internal/repository"
	"github.com/jaidev/gold-tracker-backend/internal/stream"
	"github.com/jaidev/gold-tracker-backend/internal/validation"
)

// Period filter values for the rate history query.
var periodSpans = map[string]func(time.Time) time.Time{
	"day":   func(now time.Time) time.Time { return now.AddDate(0, 0, -1) },
	"week":  func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
	"month": func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
}

var rateCSVHeaders = []string{"date", "rate"}

// RateService handles rate ingestion, normalization, and history queries.
type RateService struct {
	rateRepo *repository.RateRepository
	hub      *stream.Hub
}

// NewRateService creates a new RateService with the provided dependencies.
func NewRateService(rateRepo *repository.RateRepository, hub *stream.Hub) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		hub:      hub,
	}
}

// CreateRate normalizes and records one rate submission. A later submission
// for the same date overwrites the earlier observation. The full rate
// mapping is re-published to subscribers after the write.
func (s *RateService) CreateRate(ctx context.Context, date, rate string) (*model.RateObservation, error) {
	normalized, err := validation.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	value, err := validation.ParseRate(rate)
	if err != nil {
		return nil, err
	}

	return s.Ingest(ctx, normalized, value)
}

// Ingest writes an observation for an already-normalized date and numeric
// rate. Used by CreateRate, the CSV import, and the provider fetch.
func (s *RateService) Ingest(ctx context.Context, normalizedDate string, rate float64) (*model.RateObservation, error) {
	observation := &model.RateObservation{
		Date:       normalizedDate,
		Rate:       rate,
		RecordedAt: time.Now().UTC(),
	}

	if err := s.rateRepo.UpsertRate(ctx, validation.DateKey(normalizedDate), observation); err != nil {
		return nil, fmt.Errorf("failed to save gold rate: %w", err)
	}

	s.publishRates()

	return observation, nil
}

// ListRates returns every observation sorted by date ascending.
func (s *RateService) ListRates() ([]model.RateObservation, error) {
	return s.rateRepo.ListRates("")
}

// History returns the observations inside the requested period (day, week,
// or month; week when empty), each annotated with its change against the
// previous point in the filtered series. The first point carries zero change.
func (s *RateService) History(period string) ([]model.RatePoint, error) {
	span, ok := periodSpans[period]
	if !ok {
		if period != "" {
			return nil, fmt.Errorf("%w: unknown period %q", apperrors.ErrInvalidInput, period)
		}
		span = periodSpans["week"]
	}

	startDate := span(time.Now().UTC()).Format("2006-01-02")

	observations, err := s.rateRepo.ListRates(startDate)
	if err != nil {
		return nil, err
	}

	points := make([]model.RatePoint, len(observations))
	for i, observation := range observations {
		points[i] = model.RatePoint{RateObservation: observation}
		if i == 0 {
			continue
		}
		previous := observations[i-1].Rate
		points[i].Change = observation.Rate - previous
		points[i].ChangePercent = (observation.Rate - previous) / previous * 100
	}

	return points, nil
}

// CurrentRate returns today's observation.
// Returns apperrors.ErrRateNotFound when today has no observation yet.
func (s *RateService) CurrentRate() (model.RateObservation, error) {
	today := time.Now().UTC().Format("2006-01-02")
	return s.rateRepo.GetRateByDate(today)
}

// ExportCSV writes all observations as CSV with a date,rate header.
func (s *RateService) ExportCSV(w io.Writer) error {
	observations, err := s.rateRepo.ListRates("")
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(rateCSVHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, observation := range observations {
		record := []string{observation.Date, fmt.Sprintf("%g", observation.Rate)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ImportCSV ingests observations from a date,rate CSV. Rows are validated
// like form submissions; the first invalid row aborts the import. Returns
// the number of observations written.
func (s *RateService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if len(headers) != 2 || headers[0] != rateCSVHeaders[0] || headers[1] != rateCSVHeaders[1] {
		return 0, fmt.Errorf("%w: expected date,rate", apperrors.ErrInvalidCSVHeaders)
	}

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("failed to read CSV record: %w", err)
		}

		normalized, err := validation.NormalizeDate(record[0])
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		value, err := validation.ParseRate(record[1])
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}

		observation := &model.RateObservation{
			Date:       normalized,
			Rate:       value,
			RecordedAt: time.Now().UTC(),
		}
		if err := s.rateRepo.UpsertRate(ctx, validation.DateKey(normalized), observation); err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		imported++
	}

	if imported > 0 {
		s.publishRates()
	}

	return imported, nil
}

// PublishCurrent pushes the stored rate mapping to the hub so subscribers
// connected before the first write still receive state. Used at startup.
func (s *RateService) PublishCurrent() error {
	observations, err := s.rateRepo.ListRates("")
	if err != nil {
		return err
	}
	if len(observations) == 0 {
		return nil
	}
	s.publishRates()
	return nil
}

// publishRates pushes the full rate mapping (YYYYMMDD key to observation)
// to subscribers, matching what a fresh read would return.
func (s *RateService) publishRates() {
	observations, err := s.rateRepo.ListRates("")
	if err != nil {
		// Subscribers converge on the next successful publish.
		return
	}

	mapping := make(map[string]model.RateObservation, len(observations))
	for _, observation := range observations {
		mapping[validation.DateKey(observation.Date)] = observation
	}

	s.hub.Publish(stream.TopicRates, mapping)
}
