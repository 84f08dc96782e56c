package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	ddmmyyyyRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	dateKeyRepl = strings.NewReplacer("-", "")
)

// NormalizeDate accepts a date in DD-MM-YYYY or YYYY-MM-DD format and
// returns the canonical YYYY-MM-DD form. The normalized string must parse
// to a real calendar date whose ISO form equals the string itself, so
// impossible dates like 31-02-2025 are rejected.
func NormalizeDate(date string) (string, error) {
	normalized := strings.TrimSpace(date)

	if ddmmyyyyRe.MatchString(normalized) {
		parts := strings.Split(normalized, "-")
		normalized = parts[2] + "-" + parts[1] + "-" + parts[0]
	} else if !isoDateRe.MatchString(normalized) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, date)
	}

	parsed, err := time.Parse("2006-01-02", normalized)
	if err != nil || parsed.Format("2006-01-02") != normalized {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, date)
	}

	return normalized, nil
}

// DateKey derives the unique storage key for a normalized YYYY-MM-DD date
// by stripping the separators (YYYYMMDD). Using the date as the key gives
// at-most-one observation per calendar date.
func DateKey(normalizedDate string) string {
	return dateKeyRepl.Replace(normalizedDate)
}

// ParseRate parses a free-text rate value. The rate must be a finite,
// positive decimal number.
func ParseRate(rate string) (float64, error) {
	trimmed := strings.TrimSpace(rate)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: rate is required", apperrors.ErrInvalidRate)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidRate, rate)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: rate must be positive", apperrors.ErrInvalidRate)
	}

	return value, nil
}
