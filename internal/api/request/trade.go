package request

// SubmitTradeRequest represents the body for submitting a buy or sell
// against a priced date. Exactly one of Amount or Grams must be supplied;
// the other is derived from the rate recorded for the date.
type SubmitTradeRequest struct {
	Date   string   `json:"date"`
	Kind   string   `json:"kind"`
	Amount *float64 `json:"amount,omitempty"`
	Grams  *float64 `json:"grams,omitempty"`
}
