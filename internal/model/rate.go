package model

import "time"

// RateObservation represents one recorded gold price for one calendar date.
// Date is the canonical YYYY-MM-DD form and doubles as the uniqueness key:
// re-submitting the same date overwrites the prior observation.
type RateObservation struct {
	Date       string    `json:"date"`       // YYYY-MM-DD
	Rate       float64   `json:"rate"`       // currency units per gram
	RecordedAt time.Time `json:"recordedAt"` // last write time
}

// RatePoint is a rate observation enriched with its movement relative to the
// previous point in a filtered history series. The first point of a series
// carries zero change.
type RatePoint struct {
	RateObservation
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}
