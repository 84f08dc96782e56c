package validation

import (
	"strings"

	"github.com/jaidev/gold-tracker-backend/internal/api/request"
)

// ValidateCreateRate validates a rate submission before it is normalized
// and written.
//
// Required fields:
//   - date: DD-MM-YYYY or YYYY-MM-DD, must be a real calendar date
//   - rate: a finite positive decimal
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateRate(req request.CreateRateRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := NormalizeDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if _, err := ParseRate(req.Rate); err != nil {
		errors["rate"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
