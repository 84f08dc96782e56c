package goldapi

// Response is the raw payload returned by the hosted gold-price API for a
// spot query (goldapi.io format).
type Response struct {
	Timestamp    int64   `json:"timestamp"`
	Metal        string  `json:"metal"`
	Currency     string  `json:"currency"`
	Price        float64 `json:"price"`
	PriceGram24K float64 `json:"price_gram_24k"`
	PriceGram22K float64 `json:"price_gram_22k"`
	ErrorMessage string  `json:"error,omitempty"`
}

// SpotPrice is the structured result of a spot query: the per-gram price
// of 24-karat gold in the provider's configured currency.
type SpotPrice struct {
	Metal        string
	Currency     string
	PricePerGram float64
}
