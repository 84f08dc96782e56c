package model

import "time"

// ProviderConfig holds the connection settings for the hosted gold-price
// API used by the scheduled fetch. The access token is stored encrypted at
// rest; Token here is the decrypted value and is never serialized.
type ProviderConfig struct {
	Endpoint  string    `json:"endpoint"`
	Token     string    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
