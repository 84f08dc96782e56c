package validation

import (
	"fmt"
	"strings"

	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/model"
)

// ValidTradeKind contains the allowed trade kind values.
var ValidTradeKind = map[string]bool{
	model.TradeKindBuy: true, model.TradeKindSell: true,
}

// ValidateSubmitTrade validates a trade submission request.
//
// Required fields:
//   - date: DD-MM-YYYY or YYYY-MM-DD, must be a real calendar date
//   - kind: one of: buy, sell
//   - exactly one of amount or grams, and it must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSubmitTrade(req request.SubmitTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := NormalizeDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidTradeKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	switch {
	case req.Amount == nil && req.Grams == nil:
		errors["amount"] = "either amount or grams is required"
	case req.Amount != nil && req.Grams != nil:
		errors["amount"] = "supply either amount or grams, not both"
	case req.Amount != nil && *req.Amount <= 0:
		errors["amount"] = "amount must be positive"
	case req.Grams != nil && *req.Grams <= 0:
		errors["grams"] = "grams must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
