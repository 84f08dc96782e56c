// Package goldapi provides a client for fetching gold spot prices from a
// hosted price API.
package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client provides methods for fetching gold spot prices. It wraps an HTTP
// client configured with a request timeout.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new gold price client with default HTTP settings.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchSpotPrice queries the configured endpoint for the current gold spot
// price. The access token is sent in the x-access-token header, as the
// hosted API expects.
//
// Returns an error if the request fails, the API reports an error, or the
// response carries no positive per-gram price.
func (c *Client) FetchSpotPrice(ctx context.Context, endpoint, token string) (SpotPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return SpotPrice{}, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("x-access-token", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SpotPrice{}, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SpotPrice{}, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return SpotPrice{}, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, body)
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return SpotPrice{}, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if result.ErrorMessage != "" {
		return SpotPrice{}, fmt.Errorf("provider error: %s", result.ErrorMessage)
	}
	if result.PriceGram24K <= 0 {
		return SpotPrice{}, fmt.Errorf("provider returned no per-gram price")
	}

	return SpotPrice{
		Metal:        result.Metal,
		Currency:     result.Currency,
		PricePerGram: result.PriceGram24K,
	}, nil
}
