package request

// CreateRateRequest represents the body for recording a gold rate
// observation. Both fields arrive as free text, the way the entry form
// submits them: the date in DD-MM-YYYY or YYYY-MM-DD format, the rate as a
// decimal string.
type CreateRateRequest struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}
