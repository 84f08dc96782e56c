package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// RateRepository provides data access methods for the gold_rate table.
type RateRepository struct {
	db *sql.DB
}

// NewRateRepository creates a new RateRepository with the provided database connection.
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// UpsertRate writes the observation for its date, overwriting any prior
// value. The date key (YYYYMMDD) enforces at-most-one observation per
// calendar date.
func (r *RateRepository) UpsertRate(ctx context.Context, dateKey string, observation *model.RateObservation) error {
	query := `
		INSERT INTO gold_rate (date_key, date, rate, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date_key) DO UPDATE SET
			rate = excluded.rate,
			recorded_at = excluded.recorded_at
	`

	_, err := r.db.ExecContext(ctx, query,
		dateKey,
		observation.Date,
		observation.Rate,
		observation.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert gold rate: %w", err)
	}

	return nil
}

// GetRateByDate retrieves the observation for a YYYY-MM-DD date.
// Returns apperrors.ErrRateNotFound if no observation exists for the date.
func (r *RateRepository) GetRateByDate(date string) (model.RateObservation, error) {
	query := `SELECT date, rate, recorded_at FROM gold_rate WHERE date = ?`

	var observation model.RateObservation
	var recordedAtStr string

	err := r.db.QueryRow(query, date).Scan(&observation.Date, &observation.Rate, &recordedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RateObservation{}, apperrors.ErrRateNotFound
	}
	if err != nil {
		return model.RateObservation{}, fmt.Errorf("failed to query gold rate: %w", err)
	}

	observation.RecordedAt, err = ParseTime(recordedAtStr)
	if err != nil {
		return model.RateObservation{}, err
	}

	return observation, nil
}

// ListRates retrieves all observations sorted by date ascending. An empty
// startDate returns the full history; otherwise only dates on or after
// startDate (YYYY-MM-DD) are returned.
func (r *RateRepository) ListRates(startDate string) ([]model.RateObservation, error) {
	query := `SELECT date, rate, recorded_at FROM gold_rate`
	args := []any{}

	if startDate != "" {
		query += ` WHERE date >= ?`
		args = append(args, startDate)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gold_rate table: %w", err)
	}
	defer rows.Close()

	observations := []model.RateObservation{}

	for rows.Next() {
		var observation model.RateObservation
		var recordedAtStr string

		if err := rows.Scan(&observation.Date, &observation.Rate, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan gold_rate table results: %w", err)
		}

		observation.RecordedAt, err = ParseTime(recordedAtStr)
		if err != nil {
			return nil, err
		}

		observations = append(observations, observation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gold_rate table: %w", err)
	}

	return observations, nil
}
